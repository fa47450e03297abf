package models

// Response is the uniform JSON envelope returned by every endpoint.
type Response struct {
	IsSuccess bool        `json:"isSuccess"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
}
