// ABOUTME: Tests for the playback engine
// ABOUTME: Command scenarios, playlist advance/retreat and decode pipeline
package engine

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio/output"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/protocol"
)

// scriptControl replays canned reads, one per poll
type scriptControl struct {
	reads [][]byte
}

func (c *scriptControl) Poll(p []byte) (int, error) {
	if len(c.reads) == 0 {
		return 0, nil
	}
	n := copy(p, c.reads[0])
	c.reads = c.reads[1:]
	return n, nil
}

func (c *scriptControl) Close() error { return nil }

// recordStatus captures every emitted snapshot
type recordStatus struct {
	records []protocol.Status
}

func (s *recordStatus) Write(p []byte) error {
	status, err := protocol.ParseStatus(bytes.TrimRight(p, "\n"))
	if err != nil {
		return err
	}
	s.records = append(s.records, status)
	return nil
}

func (s *recordStatus) last() (protocol.Status, bool) {
	if len(s.records) == 0 {
		return protocol.Status{}, false
	}
	return s.records[len(s.records)-1], true
}

type testEngine struct {
	*Engine
	control *scriptControl
	status  *recordStatus
	out     *bytes.Buffer
}

func newTestEngine(vol int) *testEngine {
	control := &scriptControl{}
	status := &recordStatus{}
	out := &bytes.Buffer{}
	return &testEngine{
		Engine:  New(Config{Volume: vol}, output.NewWriter(out), control, status),
		control: control,
		status:  status,
		out:     out,
	}
}

func (te *testEngine) feed(chunks ...string) {
	for _, c := range chunks {
		te.control.reads = append(te.control.reads, []byte(c))
	}
	for range chunks {
		te.pollCommands()
	}
}

// wavFixture writes a 16-bit PCM WAV with a standard 44-byte header and
// a sample ramp, returning its path.
func wavFixture(t *testing.T, name string, rate, channels, frames int) string {
	t.Helper()

	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = int16(i % 32000)
	}
	data := audio.BytesFromSamples(samples)

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(36+len(data)))
	out.WriteString("WAVE")
	out.WriteString("fmt ")
	binary.Write(&out, binary.LittleEndian, uint32(16))
	binary.Write(&out, binary.LittleEndian, uint16(1))
	binary.Write(&out, binary.LittleEndian, uint16(channels))
	binary.Write(&out, binary.LittleEndian, uint32(rate))
	binary.Write(&out, binary.LittleEndian, uint32(rate*channels*2))
	binary.Write(&out, binary.LittleEndian, uint16(channels*2))
	binary.Write(&out, binary.LittleEndian, uint16(16))
	out.WriteString("data")
	binary.Write(&out, binary.LittleEndian, uint32(len(data)))
	out.Write(data)

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestPlayVolStatusScenario(t *testing.T) {
	te := newTestEngine(0)
	track := wavFixture(t, "a.wav", 44100, 2, 4410)

	te.feed("PLAY " + track + "\nVOL 50\nSTATUS\n")

	snap, ok := te.status.last()
	if !ok {
		t.Fatal("expected a status emission")
	}
	if snap.State != "playing" {
		t.Errorf("expected state playing, got %s", snap.State)
	}
	if snap.Vol != 50 {
		t.Errorf("expected vol 50, got %d", snap.Vol)
	}
	if snap.File != "a.wav" {
		t.Errorf("expected base name a.wav, got %s", snap.File)
	}
	if snap.Track != 1 || snap.Total != 1 {
		t.Errorf("expected track 1/1, got %d/%d", snap.Track, snap.Total)
	}
	if snap.Rate != 44100 {
		t.Errorf("expected rate 44100, got %d", snap.Rate)
	}
}

func TestPartialLineReassembly(t *testing.T) {
	te := newTestEngine(0)

	// Split across two reads: must become one PLAY dispatch, not two
	te.feed("PLA", "Y /x.mp3\n")

	if te.playlist.Len() != 1 {
		t.Fatalf("expected single-entry playlist, got %d", te.playlist.Len())
	}
	if path, _ := te.playlist.At(0); path != "/x.mp3" {
		t.Errorf("expected /x.mp3, got %s", path)
	}
	// The open failed (no such file); state is untouched
	if te.state != Stopped || te.src != nil {
		t.Errorf("expected Stopped with no source, got %v", te.state)
	}
}

func TestJumpScenario(t *testing.T) {
	te := newTestEngine(0)
	a := wavFixture(t, "a.wav", 44100, 2, 441)
	b := wavFixture(t, "b.wav", 44100, 2, 441)

	te.feed("QUEUE " + a + "\nQUEUE " + b + "\nJUMP 1\nSTATUS\n")

	snap, ok := te.status.last()
	if !ok {
		t.Fatal("expected a status emission")
	}
	if snap.Track != 2 || snap.Total != 2 {
		t.Errorf("expected track 2/2, got %d/%d", snap.Track, snap.Total)
	}
	if snap.File != "b.wav" {
		t.Errorf("expected b.wav, got %s", snap.File)
	}
	if snap.State != "playing" {
		t.Errorf("expected playing, got %s", snap.State)
	}
}

func TestAdvanceAtEndStops(t *testing.T) {
	te := newTestEngine(0)
	track := wavFixture(t, "a.wav", 44100, 2, 441)

	te.playlist.Queue(track)
	if err := te.playTrack(0); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	te.nextTrack()
	if te.state != Stopped {
		t.Errorf("expected Stopped after advancing past the end, got %v", te.state)
	}
	if te.src != nil {
		t.Error("expected no active source")
	}
}

func TestAdvanceOpensNextIndex(t *testing.T) {
	te := newTestEngine(0)
	a := wavFixture(t, "a.wav", 44100, 2, 441)
	b := wavFixture(t, "b.wav", 44100, 2, 441)

	te.playlist.Queue(a)
	te.playlist.Queue(b)
	te.playTrack(0)

	te.nextTrack()
	if te.playlist.Index() != 1 {
		t.Errorf("expected index 1, got %d", te.playlist.Index())
	}
	if te.state != Playing || te.src == nil {
		t.Error("expected next track playing")
	}
}

func TestAdvanceSkipsBadTrack(t *testing.T) {
	te := newTestEngine(0)
	a := wavFixture(t, "a.wav", 44100, 2, 441)
	c := wavFixture(t, "c.wav", 44100, 2, 441)

	te.playlist.Queue(a)
	te.playlist.Queue("/nonexistent/b.wav")
	te.playlist.Queue(c)
	te.playTrack(0)

	te.nextTrack()
	if te.playlist.Index() != 2 {
		t.Errorf("expected bad track skipped to index 2, got %d", te.playlist.Index())
	}
	if te.state != Playing {
		t.Errorf("expected Playing, got %v", te.state)
	}
}

func TestAdvanceAllBadStops(t *testing.T) {
	te := newTestEngine(0)
	a := wavFixture(t, "a.wav", 44100, 2, 441)

	te.playlist.Queue(a)
	te.playlist.Queue("/nonexistent/b.wav")
	te.playlist.Queue("/nonexistent/c.wav")
	te.playTrack(0)

	te.nextTrack()
	if te.state != Stopped || te.src != nil {
		t.Errorf("expected Stopped with no source, got %v", te.state)
	}
}

func TestRetreatThreshold(t *testing.T) {
	te := newTestEngine(0)
	// 6 seconds of 4000 Hz mono
	a := wavFixture(t, "a.wav", 4000, 1, 24000)
	b := wavFixture(t, "b.wav", 4000, 1, 24000)

	te.playlist.Queue(a)
	te.playlist.Queue(b)
	te.playTrack(1)

	// Past the threshold: restart the current track
	te.seekTo(4)
	if te.position() != 4 {
		t.Fatalf("expected position 4, got %d", te.position())
	}
	te.prevTrack()
	if te.playlist.Index() != 1 {
		t.Errorf("expected restart of index 1, got index %d", te.playlist.Index())
	}
	if te.position() != 0 {
		t.Errorf("expected position reset, got %d", te.position())
	}

	// At or under the threshold: move to the previous entry
	te.prevTrack()
	if te.playlist.Index() != 0 {
		t.Errorf("expected index 0, got %d", te.playlist.Index())
	}

	// Clamped at the first entry
	te.prevTrack()
	if te.playlist.Index() != 0 {
		t.Errorf("expected index clamped at 0, got %d", te.playlist.Index())
	}
}

func TestStopReleasesSource(t *testing.T) {
	te := newTestEngine(0)
	track := wavFixture(t, "a.wav", 44100, 2, 441)

	te.feed("PLAY " + track + "\n")
	if te.src == nil {
		t.Fatal("expected active source")
	}

	te.feed("STOP\nSTATUS\n")
	if te.state != Stopped || te.src != nil {
		t.Error("expected Stopped with source released")
	}

	snap, _ := te.status.last()
	if snap.State != "stopped" || snap.File != "" {
		t.Errorf("expected stopped snapshot with no file, got %+v", snap)
	}
}

func TestMalformedWAVLeavesStopped(t *testing.T) {
	te := newTestEngine(0)

	bad := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(bad, []byte("JUNKdata, not RIFF at all"), 0644); err != nil {
		t.Fatal(err)
	}

	te.feed("PLAY " + bad + "\n")
	if te.state != Stopped || te.src != nil {
		t.Errorf("expected Stopped with no source, got %v", te.state)
	}
}

func TestPauseResumeToggle(t *testing.T) {
	te := newTestEngine(0)
	track := wavFixture(t, "a.wav", 44100, 2, 441)

	// Transport commands are no-ops while stopped
	te.feed("PAUSE\nRESUME\nTOGGLE\n")
	if te.state != Stopped {
		t.Fatalf("expected Stopped, got %v", te.state)
	}

	te.feed("PLAY " + track + "\n")
	te.feed("PAUSE\n")
	if te.state != Paused {
		t.Errorf("expected Paused, got %v", te.state)
	}
	te.feed("PAUSE\n") // no-op when already paused
	if te.state != Paused {
		t.Errorf("expected Paused, got %v", te.state)
	}
	te.feed("RESUME\n")
	if te.state != Playing {
		t.Errorf("expected Playing, got %v", te.state)
	}
	te.feed("TOGGLE\n")
	if te.state != Paused {
		t.Errorf("expected Paused after toggle, got %v", te.state)
	}
	te.feed("TOGGLE\n")
	if te.state != Playing {
		t.Errorf("expected Playing after toggle, got %v", te.state)
	}
}

func TestDecodePipelineIdentity(t *testing.T) {
	te := newTestEngine(100)
	track := wavFixture(t, "a.wav", 44100, 2, 2205)

	te.feed("PLAY " + track + "\n")
	for te.state == Playing {
		te.decodeStep()
	}

	// 44100 Hz stereo at full volume passes through untouched
	expected := 2205 * 2 * audio.BytesPerSample
	if te.out.Len() != expected {
		t.Errorf("expected %d output bytes, got %d", expected, te.out.Len())
	}
	if te.state != Stopped {
		t.Errorf("expected Stopped at end of playlist, got %v", te.state)
	}

	samples := audio.SamplesFromBytes(te.out.Bytes())
	if samples[2] != 2 {
		t.Errorf("stream content altered: sample 2 = %d", samples[2])
	}
}

func TestDecodePipelineVolume(t *testing.T) {
	te := newTestEngine(50)
	track := wavFixture(t, "a.wav", 44100, 2, 441)

	te.feed("PLAY " + track + "\n")
	te.decodeStep()

	samples := audio.SamplesFromBytes(te.out.Bytes())
	if len(samples) == 0 {
		t.Fatal("expected output samples")
	}
	// The ramp value 100 halves to 50
	if samples[100] != 50 {
		t.Errorf("expected sample 100 scaled to 50, got %d", samples[100])
	}
}

func TestDecodePipelineMonoFanOut(t *testing.T) {
	te := newTestEngine(100)
	track := wavFixture(t, "a.wav", 44100, 1, 441)

	te.feed("PLAY " + track + "\n")
	te.decodeStep()

	samples := audio.SamplesFromBytes(te.out.Bytes())
	if len(samples) != 441*2 {
		t.Fatalf("expected %d stereo samples, got %d", 441*2, len(samples))
	}
	if samples[0] != samples[1] || samples[2] != samples[3] {
		t.Error("expected mono input duplicated into both channels")
	}
}

func TestSeekRelative(t *testing.T) {
	te := newTestEngine(0)
	track := wavFixture(t, "a.wav", 4000, 1, 24000) // 6 seconds

	te.feed("PLAY " + track + "\nSEEK 4\n")
	if te.position() != 4 {
		t.Fatalf("expected position 4, got %d", te.position())
	}

	te.feed("SEEK -2\n")
	if te.position() != 2 {
		t.Errorf("expected position 2, got %d", te.position())
	}

	te.feed("SEEK +1\n")
	if te.position() != 3 {
		t.Errorf("expected position 3, got %d", te.position())
	}

	// Clamped at both ends
	te.feed("SEEK -100\n")
	if te.position() != 0 {
		t.Errorf("expected clamp to 0, got %d", te.position())
	}
	te.feed("SEEK 100\n")
	if te.position() != 6 {
		t.Errorf("expected clamp to duration, got %d", te.position())
	}
}

func TestUnknownCommandsIgnored(t *testing.T) {
	te := newTestEngine(0)

	te.feed("FROB /x\nplay /x\n\n   \nSTATUS\n")
	snap, ok := te.status.last()
	if !ok {
		t.Fatal("expected STATUS to still work")
	}
	if snap.State != "stopped" {
		t.Errorf("unexpected state %s", snap.State)
	}
	if len(te.status.records) != 1 {
		t.Errorf("expected exactly one emission, got %d", len(te.status.records))
	}
}

func TestQuitEndsRun(t *testing.T) {
	te := newTestEngine(0)
	te.control.reads = append(te.control.reads, []byte("QUIT\n"))

	if err := te.Run(context.Background()); err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}

func TestRunHonorsContext(t *testing.T) {
	te := newTestEngine(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := te.Run(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPlaylistCommandPlaysFirst(t *testing.T) {
	te := newTestEngine(0)
	a := wavFixture(t, "a.wav", 44100, 2, 441)
	b := wavFixture(t, "b.wav", 44100, 2, 441)

	list := filepath.Join(t.TempDir(), "list.m3u")
	content := "# weekend set\n" + a + "\n\n" + b + "\n"
	if err := os.WriteFile(list, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	te.feed("PLAYLIST " + list + "\nSTATUS\n")

	snap, _ := te.status.last()
	if snap.Total != 2 || snap.Track != 1 {
		t.Errorf("expected track 1/2, got %d/%d", snap.Track, snap.Total)
	}
	if snap.State != "playing" || snap.File != "a.wav" {
		t.Errorf("expected a.wav playing, got %+v", snap)
	}
}
