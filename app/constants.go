// Package app provides the models and contracts shared by hncli.
package app

import "time"

const (
	// MinCount is the smallest number of stories a run may ask for
	MinCount = 1
	// MaxCount is the largest number of stories a run may ask for
	MaxCount = 500
	// DefaultCount is used when no count is given
	DefaultCount = 30

	// DefaultBaseURL is the HN Firebase API root
	DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"
	// DefaultDiscussURL links to a story's discussion page given its id
	DefaultDiscussURL = "https://news.ycombinator.com/item?id=%d"
	// DefaultTimeout bounds a single HTTP round trip
	DefaultTimeout = 10 * time.Second
	// DefaultRateLimit is the serve mode request budget per client
	DefaultRateLimit = "60-M"
	// DefaultListenAddr is where serve mode listens
	DefaultListenAddr = ":8080"
)
