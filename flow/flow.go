// Package flow is the logic of a single hncli run.
package flow

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mseshachalam/hncli/app"
	"github.com/mseshachalam/hncli/bringer"
	"github.com/mseshachalam/hncli/dbp"
	"github.com/mseshachalam/hncli/excerpt"
	"github.com/mseshachalam/hncli/hn"
	"github.com/mseshachalam/hncli/present"
)

// excerptSentences is how long an excerpt may get
const excerptSentences = 2

// Run is one validated request for stories
type Run struct {
	Mode      app.Mode
	Count     app.Count
	Presenter *present.Presenter
	// Excerpt summarizes text posts.
	Excerpt bool
	// ArchivePath, when set, is the sqlite archive the run is written to.
	ArchivePath string
	// Now stamps the archive and dates rendered ages.
	Now time.Time
}

// Prepare validates conf into a Run. It does no I/O.
func Prepare(conf app.Config, now time.Time) (*Run, error) {
	if err := conf.Validate(); err != nil {
		return nil, &StageError{Stage: StageValidation, Err: err}
	}
	mode, err := app.ParseMode(conf.Mode)
	if err != nil {
		return nil, &StageError{Stage: StageValidation, Err: err}
	}
	count, err := app.NewCount(conf.Count)
	if err != nil {
		return nil, &StageError{Stage: StageValidation, Err: err}
	}
	format, err := present.ParseFormat(conf.Format)
	if err != nil {
		return nil, &StageError{Stage: StageValidation, Err: err}
	}

	return &Run{
		Mode:  mode,
		Count: count,
		Presenter: &present.Presenter{
			Format:     format,
			Mode:       mode,
			DiscussURL: conf.DiscussURL,
			Now:        now,
		},
		Excerpt:     conf.Excerpt,
		ArchivePath: conf.ArchivePath,
		Now:         now,
	}, nil
}

// NewGateway makes the HN client conf describes
func NewGateway(conf app.Config) *hn.Client {
	return hn.NewClient(conf.BaseURL, time.Duration(conf.Timeout))
}

// Flow brings the stories of r, archives them and renders them into w.
// Nothing is written to w when any stage fails before the write.
func Flow(ctx context.Context, b app.Bringer, r *Run, w io.Writer) error {
	stories, err := Bring(ctx, b, r)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.Presenter.Render(&buf, stories); err != nil {
		return &StageError{Stage: StageRender, Err: err}
	}

	if r.ArchivePath != "" {
		if err := Archive(ctx, r, stories); err != nil {
			return &StageError{Stage: StageArchive, Err: err}
		}
	}

	if _, err := buf.WriteTo(w); err != nil {
		return &StageError{Stage: StageRender, Err: err}
	}

	return nil
}

// Bring brings and enriches the stories of r
func Bring(ctx context.Context, b app.Bringer, r *Run) ([]*app.Story, error) {
	stories, err := b.Bring(ctx, r.Mode, r.Count)
	if err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			return nil, &StageError{Stage: StageValidation, Err: err}
		}
		return nil, &StageError{Stage: StageListing, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"mode":      r.Mode.String(),
		"requested": int(r.Count),
		"fetched":   len(stories),
	}).Debug("brought stories")

	if r.Excerpt {
		Enrich(stories)
	}

	return stories, nil
}

// Enrich fills the excerpt of text posts that link nowhere else
func Enrich(stories []*app.Story) {
	for _, s := range stories {
		if s.HasURL() || s.Text == "" || s.Excerpt != "" {
			continue
		}
		ex, err := excerpt.Summarize(s.Text, excerptSentences)
		if err != nil {
			logrus.WithError(err).WithField("id", s.ID).Debug("no excerpt")
			continue
		}
		s.Excerpt = ex
	}
}

// Archive writes stories to the sqlite archive of r
func Archive(ctx context.Context, r *Run, stories []*app.Story) error {
	db, err := dbp.Open(r.ArchivePath)
	if err != nil {
		return err
	}
	defer db.Close()

	rows := make([]dbp.Row, 0, len(stories))
	for i, s := range stories {
		rows = append(rows, dbp.Row{Story: s, Rank: i + 1, Link: r.Presenter.Link(s)})
	}

	return dbp.InsertOrReplaceStories(ctx, db, r.Mode, r.Now.Unix(), rows)
}

// NewBringer makes the pipeline for conf around gw
func NewBringer(conf app.Config, gw app.Gateway, p app.Progress) *bringer.Bringer {
	return bringer.New(gw, p, conf.Workers)
}
