package server

import (
	"fmt"
	"strconv"
)

// parseLimit parses a user-supplied page size, capping it at max
func parseLimit(raw string, max int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse limit: %w", err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("limit must be positive")
	}
	if n > max {
		n = max
	}
	return n, nil
}
