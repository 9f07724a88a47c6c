package directory

// SetTestURL overrides the API URL on a client for testing.
// This should only be used in tests.
func SetTestURL(c *Client, url string) {
	if url != "" {
		c.url = url
	}
}
