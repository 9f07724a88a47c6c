package persona

import "time"

// SetTestClock fixes the timestamp stamped on replies.
// This should only be used in tests.
func SetTestClock(c *Client, now func() time.Time) {
	c.now = now
}
