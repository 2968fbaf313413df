package monitor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accelstream/host/sink"
	"accelstream/protocol"
)

type recorder struct {
	records []sink.Record
	err     error
}

func (r *recorder) Write(rec sink.Record) error {
	r.records = append(r.records, rec)
	return r.err
}

func (r *recorder) Close() error { return nil }

func TestRunDecodesStream(t *testing.T) {
	stream := "0\r\nX000Y000\r\nX010Y020\r\nX200Y003\r\nX00"
	rec := &recorder{}
	m := New(iotest.OneByteReader(strings.NewReader(stream)), rec, 0)
	stamp := time.Unix(100, 0)
	m.Now = func() time.Time { return stamp }

	require.NoError(t, m.Run(context.Background()))

	require.Len(t, rec.records, 3)
	assert.Equal(t, protocol.Sample{X: 0, Y: 0}, rec.records[0].Sample)
	assert.Equal(t, protocol.Sample{X: 10, Y: 20}, rec.records[1].Sample)
	assert.Equal(t, protocol.Sample{X: 200, Y: 3}, rec.records[2].Sample)
	for i, r := range rec.records {
		assert.Equal(t, uint64(i), r.Seq)
		assert.Equal(t, stamp, r.Time)
	}

	st := m.Stats()
	assert.Equal(t, uint64(3), st.Samples)
	assert.Equal(t, uint64(3), st.Decoder.Discarded)
}

func TestRunCountsSinkErrors(t *testing.T) {
	rec := &recorder{err: errors.New("broker down")}
	m := New(strings.NewReader("X001Y002\r\nX003Y004\r\n"), rec, 0)

	require.NoError(t, m.Run(context.Background()))
	assert.Len(t, rec.records, 2)
	assert.Equal(t, uint64(2), m.Stats().SinkErrors)
}

func TestRunReadError(t *testing.T) {
	errGone := errors.New("device unplugged")
	m := New(iotest.ErrReader(errGone), &recorder{}, 0)

	err := m.Run(context.Background())
	assert.ErrorIs(t, err, errGone)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w := io.Pipe()
	defer w.Close()
	m := New(r, &recorder{}, 0)
	assert.NoError(t, m.Run(ctx))
}
