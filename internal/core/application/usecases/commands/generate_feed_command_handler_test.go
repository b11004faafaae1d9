package commands_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	body string
	rows int
	err  error
}

func (s stubFeed) WriteFeed(_ context.Context, w io.Writer) (int, error) {
	if _, err := io.WriteString(w, s.body); err != nil {
		return 0, err
	}
	return s.rows, s.err
}

func TestGenerateFeedCommandHandler_StreamsToBlobStore(t *testing.T) {
	ctx := t.Context()
	blobs := new(MockBlobStore)
	blobs.On("Put", ctx, commands.DefaultFeedKey, []byte("id,title\nLION-1,Lion\n"), "text/csv").Return(nil).Once()

	cmd, err := commands.NewGenerateFeedCommand("")
	require.NoError(t, err)
	res, err := commands.NewGenerateFeedCommandHandler(stubFeed{body: "id,title\nLION-1,Lion\n", rows: 1}, blobs, testLogger).
		Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.GenerateFeedResult{Key: "feeds/meta_catalog.csv", Rows: 1}, res)
	blobs.AssertExpectations(t)
}

func TestGenerateFeedCommandHandler_FeedErrorFailsUpload(t *testing.T) {
	ctx := t.Context()
	blobs := new(MockBlobStore)
	blobs.On("Put", ctx, "feeds/custom.csv", mock.Anything, "text/csv").Return(errors.New("read failed")).Once()

	cmd, err := commands.NewGenerateFeedCommand("feeds/custom.csv")
	require.NoError(t, err)
	_, err = commands.NewGenerateFeedCommandHandler(stubFeed{body: "id\n", err: errors.New("db gone")}, blobs, testLogger).
		Handle(ctx, cmd)
	require.Error(t, err)
}

func TestNewGenerateFeedCommand_RejectsEscapingKeys(t *testing.T) {
	_, err := commands.NewGenerateFeedCommand("../etc/passwd")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = commands.NewGenerateFeedCommand("/abs.csv")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
