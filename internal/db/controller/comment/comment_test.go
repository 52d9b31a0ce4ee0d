package comment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/db/testdb"
	"github.com/gywan/gywan-site/internal/validation"
)

var person = AttributedSubmission{Text: "Great event!", Name: "Aisha", Email: "aisha@example.org"}

func TestAttach_ItemTargets(t *testing.T) {
	db := testdb.New(t)

	story := models.Story{Title: "s", IsActive: true}
	post := models.BlogPost{Title: "p", IsActive: true, Published: true}
	hidden := models.Story{Title: "h", IsActive: false}

	require.NoError(t, db.Create(&story).Error)
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&hidden).Error)

	tests := []struct {
		name    string
		target  Target
		wantErr error
	}{
		{name: "story", target: StoryTarget{ID: story.ID}},
		{name: "blog post", target: BlogPostTarget{ID: post.ID}},
		{name: "missing event", target: EventTarget{ID: 4242}, wantErr: ErrTargetNotFound},
		{name: "missing resource", target: ResourceTarget{ID: 1}, wantErr: ErrTargetNotFound},
		{name: "hidden story", target: StoryTarget{ID: hidden.ID}, wantErr: ErrTargetNotFound},
		{name: "nil target", target: nil, wantErr: ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before int64
			require.NoError(t, db.Model(&models.Comment{}).Count(&before).Error)

			c, err := Attach(db, tt.target, person)

			var after int64
			require.NoError(t, db.Model(&models.Comment{}).Count(&after).Error)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, after, "no comment may be stored")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, before+1, after)

			wantType, wantID := tt.target.target()
			assert.Equal(t, wantType, c.TargetType)
			assert.Equal(t, wantID, c.TargetID)
			assert.Equal(t, "Aisha", c.Name)
		})
	}
}

func TestAttach_Section(t *testing.T) {
	db := testdb.New(t)

	target, err := SectionFor(catalog.KindEvent)
	require.NoError(t, err)

	c, err := Attach(db, target, AnonymousSubmission{Text: "  hello  "})
	require.NoError(t, err)

	assert.Equal(t, "hello", c.Text)
	assert.Equal(t, models.CommentTargetEvent, c.TargetType)
	assert.Zero(t, c.TargetID)
	assert.Empty(t, c.Name)

	_, err = Attach(db, SectionTarget{Type: "podcast"}, AnonymousSubmission{Text: "x"})
	require.ErrorIs(t, err, ErrInvalidTarget)
}

func TestAttach_RejectsMismatchedSubmission(t *testing.T) {
	db := testdb.New(t)

	event := models.Event{Title: "Summit", IsActive: true}
	require.NoError(t, db.Create(&event).Error)

	_, err := Attach(db, SectionTarget{Type: models.CommentTargetEvent}, person)
	require.ErrorIs(t, err, ErrInvalidTarget)

	_, err = Attach(db, EventTarget{ID: event.ID}, AnonymousSubmission{Text: "anonymous on a detail page"})
	require.ErrorIs(t, err, ErrInvalidTarget)

	_, err = Attach(db, EventTarget{ID: event.ID}, "plain text")
	require.ErrorIs(t, err, ErrInvalidTarget)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAttach_Validation(t *testing.T) {
	db := testdb.New(t)
	section := SectionTarget{Type: models.CommentTargetStory}

	_, err := Attach(db, section, AnonymousSubmission{Text: "   "})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"This field is required."}, verrs["comment"])

	_, err = Attach(db, section, AnonymousSubmission{Text: strings.Repeat("a", 2001)})
	require.ErrorAs(t, err, &verrs)

	story := models.Story{Title: "s", IsActive: true}
	require.NoError(t, db.Create(&story).Error)

	_, err = Attach(db, StoryTarget{ID: story.ID}, AttributedSubmission{Text: "hi", Name: "A", Email: "not-an-email"})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "email")

	_, err = Attach(db, StoryTarget{ID: story.ID}, AttributedSubmission{Text: "hi"})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "name")
	assert.Contains(t, verrs, "email")

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecent(t *testing.T) {
	db := testdb.New(t)

	event := models.Event{Title: "e", IsActive: true}
	require.NoError(t, db.Create(&event).Error)

	for i := range 12 {
		_, err := Attach(db, EventTarget{ID: event.ID}, AttributedSubmission{
			Text: fmt.Sprintf("comment %d", i), Name: "n", Email: "n@example.org",
		})
		require.NoError(t, err)
	}

	_, err := Attach(db, SectionTarget{Type: models.CommentTargetEvent}, AnonymousSubmission{Text: "section"})
	require.NoError(t, err)

	onEvent, err := Recent(db, EventTarget{ID: event.ID}, 50)
	require.NoError(t, err)
	require.Len(t, onEvent, RecentLimit)
	assert.Equal(t, "comment 11", onEvent[0].Text)

	all, err := Recent(db, nil, 3)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "section", all[0].Text)

	onSection, err := Recent(db, SectionTarget{Type: models.CommentTargetEvent}, 0)
	require.NoError(t, err)
	require.Len(t, onSection, 1)
}

func TestTargetFor(t *testing.T) {
	target, err := TargetFor(catalog.KindResource, 7)
	require.NoError(t, err)
	assert.Equal(t, ResourceTarget{ID: 7}, target)

	_, err = TargetFor("podcasts", 1)
	require.ErrorIs(t, err, catalog.ErrUnknownKind)
}
