package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/db/testdb"
	"github.com/gywan/gywan-site/internal/uniuri"
	"github.com/gywan/gywan-site/internal/validation"
)

func TestSubmitContact(t *testing.T) {
	db := testdb.New(t)

	msg, err := SubmitContact(db, ContactForm{
		Name: " Fatmata ", Email: "f@example.org", Subject: "Volunteering", Message: "How can I help?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fatmata", msg.Name)
	assert.NotZero(t, msg.ID)

	_, err = SubmitContact(db, ContactForm{Email: "bad"})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.ElementsMatch(t, []string{"name", "email", "subject", "message"}, keys(verrs))

	var count int64
	require.NoError(t, db.Model(&models.ContactMessage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubscribe_Duplicate(t *testing.T) {
	db := testdb.New(t)

	first, err := Subscribe(db, NewsletterForm{Email: "x@y.com"})
	require.NoError(t, err)
	assert.Len(t, first.CancelToken, 32)

	for _, email := range []string{"x@y.com", "X@Y.com"} {
		_, err = Subscribe(db, NewsletterForm{Email: email})
		require.ErrorIs(t, err, ErrDuplicateEmail)

		var dup DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, []string{DuplicateEmailMessage}, dup.Errors["email"])

		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, validation.Errors{"email": {DuplicateEmailMessage}}, verrs)
	}

	var count int64
	require.NoError(t, db.Model(&models.Subscriber{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubscribe_CancelTokenCollision(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, db.Create(&models.Subscriber{Email: "first@example.org", CancelToken: "taken"}).Error)

	tokens := []string{"taken", "fresh"}
	newCancelToken = func() string {
		tok := tokens[0]
		if len(tokens) > 1 {
			tokens = tokens[1:]
		}

		return tok
	}

	t.Cleanup(func() { newCancelToken = uniuri.Token })

	sub, err := Subscribe(db, NewsletterForm{Email: "second@example.org"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", sub.CancelToken)

	// a token that keeps colliding is a storage failure, not a duplicate email
	newCancelToken = func() string { return "taken" }

	_, err = Subscribe(db, NewsletterForm{Email: "third@example.org"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, db.Model(&models.Subscriber{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSubscribe_Invalid(t *testing.T) {
	_, err := Subscribe(testdb.New(t), NewsletterForm{Email: "not an email"})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"Enter a valid email address."}, verrs["email"])
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestUnsubscribe(t *testing.T) {
	db := testdb.New(t)

	sub, err := Subscribe(db, NewsletterForm{Email: "leave@example.org", Name: "Leaver"})
	require.NoError(t, err)

	gone, err := Unsubscribe(db, sub.CancelToken)
	require.NoError(t, err)
	assert.Equal(t, "leave@example.org", gone.Email)

	_, err = Unsubscribe(db, sub.CancelToken)
	require.ErrorIs(t, err, ErrSubscriberNotFound)

	_, err = Unsubscribe(db, "")
	require.ErrorIs(t, err, ErrSubscriberNotFound)

	// address can subscribe again
	_, err = Subscribe(db, NewsletterForm{Email: "leave@example.org"})
	require.NoError(t, err)
}

func TestNilDB(t *testing.T) {
	_, err := SubmitContact(nil, ContactForm{})
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Subscribe(nil, NewsletterForm{})
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Unsubscribe(nil, "t")
	require.ErrorIs(t, err, ErrDBNil)
}

func keys(m validation.Errors) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return out
}

func TestRecentMessagesAndCount(t *testing.T) {
	db := testdb.New(t)

	for _, subject := range []string{"first", "second"} {
		_, err := SubmitContact(db, ContactForm{Name: "n", Email: "n@example.org", Subject: subject, Message: "m"})
		require.NoError(t, err)
	}

	msgs, err := RecentMessages(db, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "second", msgs[0].Subject)

	_, err = Subscribe(db, NewsletterForm{Email: "a@example.org"})
	require.NoError(t, err)

	n, err := CountSubscribers(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
