package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same layout every time, potentially confusing the key format.
 */

import "fmt"

func FormatMatchSearchKey(userID int64) string {
	return fmt.Sprintf("match_search:%d", userID)
}
