package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// WantsJSON reports whether a request should get a JSON response instead of
// a redirect: JSON bodies, XHR requests, and clients that ask for JSON.
func WantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	if strings.Contains(c.ContentType(), "application/json") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// RefererOr returns the request's Referer, or the fallback path when the
// header is empty.
func RefererOr(c *gin.Context, fallback string) string {
	if ref := c.GetHeader("Referer"); ref != "" {
		return ref
	}
	return fallback
}
