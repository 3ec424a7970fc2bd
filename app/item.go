package app

import "strings"

// Story is a HN story detail, ready for display
type Story struct {
	//ID is the story's unique id.
	ID int `json:"id"`
	//Title of the story. Empty when HN sends none.
	Title string `json:"title"`
	//Score is the story's points.
	Score int `json:"score"`
	//URL of the story. Empty for text posts such as Ask HN.
	URL string `json:"url,omitempty"`
	//Descendants is the total comment count.
	Descendants int `json:"descendants"`
	//Type is one of "job", "story", "comment", "poll", or "pollopt".
	Type string `json:"type"`
	//By is the username of the story's author.
	By string `json:"by,omitempty"`
	//Time is the creation time in unix seconds.
	Time int64 `json:"time,omitempty"`
	//Text is the HTML body of a text post.
	Text string `json:"-"`

	//Excerpt is a plain text summary of Text, filled only on request.
	Excerpt string `json:"excerpt,omitempty"`
}

// linkless are the item types HN never gives an external URL
var linkless = map[string]bool{"comment": true, "poll": true, "pollopt": true}

// HasURL reports whether s links outside HN. Stories without one are shown
// with their discussion page instead.
func (s *Story) HasURL() bool {
	return !linkless[s.Type] && strings.TrimSpace(s.URL) != ""
}
