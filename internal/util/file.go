package util

import (
	"io"
	"mime/multipart"
)

// ReadUploadedFile reads an uploaded multipart file fully into memory.
func ReadUploadedFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
