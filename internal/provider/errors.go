package provider

import (
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// StatusCode extracts the provider HTTP status from an SDK error, 0 if the
// request never got a response.
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// Describe renders an SDK error as "api error: <status> - <detail>" so the
// provider's status and body reach the caller.
func Describe(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Type != "" {
			return fmt.Sprintf("api error: %d - %s (%s)", apiErr.HTTPStatusCode, apiErr.Message, apiErr.Type)
		}
		return fmt.Sprintf("api error: %d - %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("api error: %d - %v", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return fmt.Sprintf("connection to provider failed: %v", err)
}
