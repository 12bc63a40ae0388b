package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// envelope matches the server's response shape
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

// apiRequest performs an authenticated request and unwraps the envelope
func apiRequest(method, path string, payload interface{}) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unexpected response: %s", raw)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if env.Message != "" {
			return nil, fmt.Errorf("API error: %s", env.Message)
		}
		return nil, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	return env.Data, nil
}

// printResult renders data according to the --output flag
func printResult(data json.RawMessage) error {
	if output == "json" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, data, "", "  "); err != nil {
			fmt.Println(string(data))
			return nil
		}
		fmt.Println(pretty.String())
		return nil
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		fmt.Println(string(data))
		return nil
	}
	printValue(generic, "")
	return nil
}

func printValue(v interface{}, indent string) {
	switch val := v.(type) {
	case map[string]interface{}:
		for key, item := range val {
			switch item.(type) {
			case map[string]interface{}, []interface{}:
				fmt.Printf("%s%s:\n", indent, key)
				printValue(item, indent+"  ")
			default:
				fmt.Printf("%s%s: %v\n", indent, key, item)
			}
		}
	case []interface{}:
		for i, item := range val {
			fmt.Printf("%s- [%d]\n", indent, i)
			printValue(item, indent+"  ")
		}
	default:
		fmt.Printf("%s%v\n", indent, val)
	}
}
