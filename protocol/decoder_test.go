package protocol

import "testing"

func drain(d *Decoder) []Sample {
	var out []Sample
	for {
		s, ok := d.Next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}

func TestDecoderChunked(t *testing.T) {
	d := NewDecoder(64)
	stream := []byte("X001Y002\r\nX003Y004\r\n")

	var got []Sample
	for i := 0; i < len(stream); i += 3 {
		end := i + 3
		if end > len(stream) {
			end = len(stream)
		}
		d.Feed(stream[i:end])
		got = append(got, drain(d)...)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(got))
	}
	if got[0] != (Sample{1, 2}) || got[1] != (Sample{3, 4}) {
		t.Errorf("Unexpected samples %v", got)
	}
	if st := d.Stats(); st.Frames != 2 || st.Discarded != 0 {
		t.Errorf("Unexpected stats %+v", st)
	}
}

func TestDecoderResync(t *testing.T) {
	d := NewDecoder(64)
	// opened mid-frame, then a corrupted frame
	d.Feed([]byte("20\r\nX005Y006\r\nX0?7Y008\r\nX009Y010\r\n"))

	got := drain(d)
	if len(got) != 2 {
		t.Fatalf("Expected 2 samples, got %d: %v", len(got), got)
	}
	if got[0] != (Sample{5, 6}) || got[1] != (Sample{9, 10}) {
		t.Errorf("Unexpected samples %v", got)
	}
	if st := d.Stats(); st.Discarded != 4+10 {
		t.Errorf("Expected 14 discarded bytes, got %d", st.Discarded)
	}
}

func TestDecoderOverflow(t *testing.T) {
	d := NewDecoder(FrameLen + 1)
	d.Feed([]byte("X001Y002\r\nX003"))
	if st := d.Stats(); st.Overflow != 4 {
		t.Errorf("Expected 4 bytes overflow, got %d", st.Overflow)
	}
	if got := drain(d); len(got) != 1 {
		t.Errorf("Expected 1 sample, got %d", len(got))
	}
}
