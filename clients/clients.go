package clients

import (
	"net/http"
	"time"
)

type HTTP struct {
	c          *http.Client
	attempts   uint
	retryDelay time.Duration
}

func NewHTTP() *HTTP {
	return &HTTP{c: &http.Client{Timeout: 60 * time.Second}, attempts: 3, retryDelay: time.Second}
}
