package generation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"artmoa/internal/models"
)

type fakeRewriter struct {
	out   string
	err   error
	calls int
}

func (f *fakeRewriter) Rewrite(ctx context.Context, userInput string) (string, error) {
	f.calls++
	return f.out, f.err
}

type fakeSynthesizer struct {
	out   string
	err   error
	calls int
	got   string
}

func (f *fakeSynthesizer) SynthesizeURL(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.got = prompt
	return f.out, f.err
}

type fakePersister struct {
	out   string
	err   error
	calls int
	from  string
}

func (f *fakePersister) Persist(ctx context.Context, sourceURL, promptText string, ownerID uuid.UUID) (string, error) {
	f.calls++
	f.from = sourceURL
	return f.out, f.err
}

type fakeRecorder struct {
	err   error
	calls int
	got   *models.Generation
}

func (f *fakeRecorder) Create(ctx context.Context, g *models.Generation) (*models.Generation, error) {
	f.calls++
	f.got = g
	if f.err != nil {
		return nil, f.err
	}
	return g, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPipelineRunHappyPath(t *testing.T) {
	rw := &fakeRewriter{out: "A dreamy watercolor image of a cat astronaut."}
	syn := &fakeSynthesizer{out: "https://dalle.example/tmp/abc.png"}
	per := &fakePersister{out: "https://img.artmoa.example/user_x.png"}
	rec := &fakeRecorder{}
	owner := uuid.New()

	p := NewPipeline(rw, syn, per, rec, discardLogger())

	res, err := p.Run(context.Background(), "우주를 떠다니는 고양이", owner)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ImageURL != "https://img.artmoa.example/user_x.png" {
		t.Errorf("image url: got %q", res.ImageURL)
	}
	if res.GeneratedPrompt != rw.out {
		t.Errorf("generated prompt: got %q", res.GeneratedPrompt)
	}
	if syn.got != rw.out {
		t.Error("synthesis must receive the rewritten prompt, not the raw input")
	}
	if per.from != syn.out {
		t.Error("persistence must receive the transient URL")
	}
	if rec.got == nil || rec.got.Prompt != "우주를 떠다니는 고양이" || rec.got.ImageURL != res.ImageURL {
		t.Errorf("record: got %+v", rec.got)
	}
	if rec.got.GeneratedPrompt == nil || *rec.got.GeneratedPrompt != rw.out {
		t.Error("record should carry the rewritten prompt")
	}
	if rw.calls != 1 || syn.calls != 1 || per.calls != 1 || rec.calls != 1 {
		t.Errorf("each stage should run exactly once: %d/%d/%d/%d", rw.calls, syn.calls, per.calls, rec.calls)
	}
}

func TestPipelineRunRewriteFailureAbortsEverything(t *testing.T) {
	rw := &fakeRewriter{err: ErrPromptGeneration}
	syn := &fakeSynthesizer{}
	per := &fakePersister{}
	rec := &fakeRecorder{}

	p := NewPipeline(rw, syn, per, rec, discardLogger())

	_, err := p.Run(context.Background(), "고양이", uuid.New())
	if !errors.Is(err, ErrPromptGeneration) {
		t.Fatalf("expected ErrPromptGeneration, got %v", err)
	}
	if syn.calls != 0 || per.calls != 0 || rec.calls != 0 {
		t.Errorf("no downstream stage may run: %d/%d/%d", syn.calls, per.calls, rec.calls)
	}
}

func TestPipelineRunSynthesisFailureAbortsDownstream(t *testing.T) {
	rw := &fakeRewriter{out: "prompt"}
	syn := &fakeSynthesizer{err: errors.New("model overloaded")}
	per := &fakePersister{}
	rec := &fakeRecorder{}

	p := NewPipeline(rw, syn, per, rec, discardLogger())

	_, err := p.Run(context.Background(), "고양이", uuid.New())
	if !errors.Is(err, ErrImageGeneration) {
		t.Fatalf("expected ErrImageGeneration, got %v", err)
	}
	if rw.calls != 1 || syn.calls != 1 {
		t.Errorf("rewrite and synthesis should each run once: %d/%d", rw.calls, syn.calls)
	}
	if per.calls != 0 || rec.calls != 0 {
		t.Errorf("persist and record must not run: %d/%d", per.calls, rec.calls)
	}
}

func TestPipelineRunPersistFailureSkipsRecord(t *testing.T) {
	rw := &fakeRewriter{out: "prompt"}
	syn := &fakeSynthesizer{out: "https://dalle.example/tmp/abc.png"}
	per := &fakePersister{err: ErrArtifactPersist}
	rec := &fakeRecorder{}

	p := NewPipeline(rw, syn, per, rec, discardLogger())

	_, err := p.Run(context.Background(), "고양이", uuid.New())
	if !errors.Is(err, ErrArtifactPersist) {
		t.Fatalf("expected ErrArtifactPersist, got %v", err)
	}
	if rec.calls != 0 {
		t.Error("no record may be written when persistence fails")
	}
}

func TestPipelineRunRecordFailure(t *testing.T) {
	rw := &fakeRewriter{out: "prompt"}
	syn := &fakeSynthesizer{out: "https://dalle.example/tmp/abc.png"}
	per := &fakePersister{out: "https://img.artmoa.example/user_x.png"}
	rec := &fakeRecorder{err: errors.New("db down")}

	p := NewPipeline(rw, syn, per, rec, discardLogger())

	_, err := p.Run(context.Background(), "고양이", uuid.New())
	if !errors.Is(err, ErrRecordSave) {
		t.Fatalf("expected ErrRecordSave, got %v", err)
	}
}
