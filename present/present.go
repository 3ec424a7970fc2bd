// Package present renders fetched stories for people and feed readers.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/gorilla/feeds"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/snabb/sitemap"

	"github.com/mseshachalam/hncli/app"
	"github.com/mseshachalam/hncli/util"
)

const (
	frontPageURL = "https://news.ycombinator.com/"
	newestURL    = "https://news.ycombinator.com/newest"
)

var (
	rankStyle    = color.New(color.OpFuzzy)
	scoreStyle   = color.New(color.FgYellow, color.OpBold)
	titleStyle   = color.New(color.FgWhite, color.OpBold)
	linkStyle    = color.New(color.FgCyan, color.OpUnderscore)
	metaStyle    = color.New(color.FgGray)
	headerStyle  = color.New(color.BgCyan, color.FgBlack, color.OpBold)
	doneStyle    = color.New(color.FgGreen, color.OpBold)
	excerptStyle = color.New(color.OpItalic)
)

// Presenter renders stories in one Format.
// Render only reads its input, so equal inputs give byte-identical output.
type Presenter struct {
	Format Format
	// Mode is only used to title documents.
	Mode app.Mode
	// Color styles the text format with terminal colors.
	Color bool
	// DiscussURL links a story id to its discussion page; it must contain %d.
	DiscussURL string
	// Now is the reference for "3 hours ago" ages. Zero hides ages.
	Now time.Time
}

// Render writes stories to w in rank order
func (p *Presenter) Render(w io.Writer, stories []*app.Story) error {
	switch p.Format {
	case Text, "":
		return p.text(w, stories)
	case Table:
		return p.table(w, stories)
	case JSON:
		return p.json(w, stories)
	case RSS, Atom, JSONFeed:
		return p.feed(w, stories)
	case Sitemap:
		return p.sitemap(w, stories)
	}
	return errors.Errorf("unknown format %q", p.Format)
}

// DiscussLink is the HN discussion page of id
func (p *Presenter) DiscussLink(id int) string {
	tmpl := p.DiscussURL
	if tmpl == "" {
		tmpl = app.DefaultDiscussURL
	}
	return fmt.Sprintf(tmpl, id)
}

// Link is the story's external URL, or its discussion page when it has none
func (p *Presenter) Link(s *app.Story) string {
	if s.HasURL() {
		return strings.TrimSpace(s.URL)
	}
	return p.DiscussLink(s.ID)
}

func (p *Presenter) paint(st color.Style, s string) string {
	if !p.Color {
		return s
	}
	return st.Sprint(s)
}

func (p *Presenter) text(w io.Writer, stories []*app.Story) error {
	var b strings.Builder

	header := fmt.Sprintf(" Hacker News | %s ", p.Mode)
	fmt.Fprintf(&b, "\n%s\n\n", p.paint(headerStyle, header))

	for i, s := range stories {
		rank := p.paint(rankStyle, fmt.Sprintf("%2d.", i+1))
		score := p.paint(scoreStyle, "["+center(humanize.Comma(int64(s.Score)), 5)+"]")
		title := p.paint(titleStyle, s.Title)
		if s.HasURL() {
			if domain, err := util.URLToDomain(p.Link(s)); err == nil {
				title += " " + p.paint(metaStyle, "("+domain+")")
			}
		}
		fmt.Fprintf(&b, "%s %s %s\n", rank, score, title)
		fmt.Fprintf(&b, "      %s\n", p.paint(linkStyle, p.Link(s)))
		fmt.Fprintf(&b, "      %s\n", p.paint(metaStyle, p.meta(s)))
		if s.Excerpt != "" {
			fmt.Fprintf(&b, "      %s\n", p.paint(excerptStyle, s.Excerpt))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n", p.paint(doneStyle, "Done!"))

	_, err := io.WriteString(w, b.String())
	return err
}

// meta is the comment count, author and age line of s
func (p *Presenter) meta(s *app.Story) string {
	parts := []string{comments(s.Descendants)}
	if s.By != "" {
		parts = append(parts, "by "+s.By)
	}
	if !p.Now.IsZero() && s.Time > 0 {
		parts = append(parts, humanize.RelTime(time.Unix(s.Time, 0), p.Now, "ago", "from now"))
	}
	return strings.Join(parts, " | ")
}

func comments(n int) string {
	if n == 1 {
		return "1 comment"
	}
	return humanize.Comma(int64(n)) + " comments"
}

// center pads s with spaces to width, extra space going right
func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func (p *Presenter) table(w io.Writer, stories []*app.Story) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Score", "Comments", "Title", "Link"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for i, s := range stories {
		table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Descendants),
			s.Title,
			p.Link(s),
		})
	}
	table.Render()
	return nil
}

// entry is a story as written by the json format
type entry struct {
	Rank        int    `json:"rank"`
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Score       int    `json:"score"`
	Link        string `json:"link"`
	DiscussLink string `json:"discussLink"`
	Descendants int    `json:"descendants"`
	Type        string `json:"type,omitempty"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
}

func (p *Presenter) json(w io.Writer, stories []*app.Story) error {
	entries := make([]entry, 0, len(stories))
	for i, s := range stories {
		entries = append(entries, entry{
			Rank:        i + 1,
			ID:          s.ID,
			Title:       s.Title,
			Score:       s.Score,
			Link:        p.Link(s),
			DiscussLink: p.DiscussLink(s.ID),
			Descendants: s.Descendants,
			Type:        s.Type,
			By:          s.By,
			Time:        s.Time,
			Excerpt:     s.Excerpt,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// Feed builds a gorilla feed of stories
func (p *Presenter) Feed(stories []*app.Story) *feeds.Feed {
	home := frontPageURL
	if p.Mode == app.Latest {
		home = newestURL
	}
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Hacker News | %s", p.Mode),
		Link:        &feeds.Link{Href: home},
		Description: fmt.Sprintf("The %s stories on Hacker News", p.Mode),
		Created:     p.Now,
	}

	var feedItems []*feeds.Item
	for _, s := range stories {
		feedItem := &feeds.Item{
			Id:    strconv.Itoa(s.ID),
			Title: s.Title,
			Link:  &feeds.Link{Href: p.Link(s)},
		}
		if s.By != "" {
			feedItem.Author = &feeds.Author{Name: s.By}
		}
		if s.Time > 0 {
			feedItem.Created = time.Unix(s.Time, 0).UTC()
		}
		if strings.TrimSpace(s.Excerpt) != "" {
			feedItem.Description = s.Excerpt
		} else {
			feedItem.Description = fmt.Sprintf("%d points, %s: %s", s.Score, comments(s.Descendants), p.DiscussLink(s.ID))
		}
		feedItems = append(feedItems, feedItem)
	}
	feed.Items = feedItems

	return feed
}

func (p *Presenter) feed(w io.Writer, stories []*app.Story) error {
	feed := p.Feed(stories)

	var (
		doc string
		err error
	)
	switch p.Format {
	case Atom:
		doc, err = feed.ToAtom()
	case RSS:
		doc, err = feed.ToRss()
	default:
		doc, err = feed.ToJSON()
	}
	if err != nil {
		return errors.Wrapf(err, "render %s", p.Format)
	}

	_, err = fmt.Fprintf(w, "%s\n", doc)
	return err
}

func (p *Presenter) sitemap(w io.Writer, stories []*app.Story) error {
	sm := sitemap.New()
	for _, s := range stories {
		u := &sitemap.URL{
			Loc:        p.Link(s),
			ChangeFreq: sitemap.Hourly,
		}
		if s.Time > 0 {
			lastMod := time.Unix(s.Time, 0).UTC()
			u.LastMod = &lastMod
		}
		sm.Add(u)
	}

	_, err := sm.WriteTo(w)
	return err
}
