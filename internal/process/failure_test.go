package process_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/vmunix/animeta/internal/process"
)

func TestFailure_Error(t *testing.T) {
	d := process.NewItemDescriptor(process.Series, process.ItemIdentifier{Name: "Tenchi Muyo"}, nil, "en", nil)
	ctx := process.NewResultContext(process.SourceTvDb, d)

	f := ctx.Wrap(process.UpstreamFailure, errors.New("status 503"), "Failed to load series with TvDb Id '1'")
	assert.Equal(t, "TvDb: Series 'Tenchi Muyo': Failed to load series with TvDb Id '1': status 503", f.Error())
	assert.ErrorIs(t, f, process.ErrUpstream)
	assert.NotErrorIs(t, f, process.ErrNotFound)
}

func TestAsFailure(t *testing.T) {
	d := process.NewItemDescriptor(process.Season, process.ItemIdentifier{Index: mo.Some(2), Name: "S2"}, nil, "", nil)
	inner := process.NewResultContext(process.SourceAniDb, d).Failed(process.NotFound, "missing")

	wrapped := fmt.Errorf("identify: %w", inner)
	f := process.AsFailure(wrapped)
	assert.Same(t, inner, f)
	assert.ErrorIs(t, wrapped, process.ErrNotFound)

	plain := process.AsFailure(errors.New("boom"))
	assert.Equal(t, process.UpstreamFailure, plain.Kind)

	assert.Nil(t, process.AsFailure(nil))
}
