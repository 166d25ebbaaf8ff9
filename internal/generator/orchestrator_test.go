package generator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagecraft/internal/ai"
	"pagecraft/internal/models"
	"pagecraft/internal/synth"
)

// call records one GenerateWithModel invocation.
type call struct {
	provider string
	model    string
	prompt   string
}

// fakeService answers per model: a configured document, or an error.
type fakeService struct {
	mu      sync.Mutex
	docs    map[string]string
	errs    map[string]error
	block   chan struct{} // when non-nil, every call waits on it
	started chan struct{}
	calls   []call
}

func (f *fakeService) GenerateWithModel(ctx context.Context, provider, model, _, userPrompt string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{provider: provider, model: model, prompt: userPrompt})
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if block != nil {
		<-block
	}

	if err := f.errs[model]; err != nil {
		return "", err
	}
	return f.docs[model], nil
}

func (f *fakeService) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

type fakeModerator struct {
	result *ai.ModerationResult
	err    error
}

func (m fakeModerator) HasModerator() bool { return true }

func (m fakeModerator) CheckPrompt(context.Context, string) (*ai.ModerationResult, error) {
	return m.result, m.err
}

var blogConfig = models.TemplateConfig{
	Type:     models.SiteTypeBlog,
	Name:     "Field Notes",
	Features: []models.Feature{models.FeatureResponsive, models.FeatureDarkMode},
	Styling:  models.StylingModern,
}

var chainCfg = ChainConfig{
	PrimaryProvider:   "openai",
	PrimaryModel:      "gpt-4o",
	SecondaryProvider: "openai",
	SecondaryModel:    "gpt-4o-mini",
}

func TestGenerateRequiresType(t *testing.T) {
	svc := &fakeService{}
	o := New(DefaultChain(svc, chainCfg))

	for _, typ := range []models.SiteType{"", "spaceship"} {
		_, err := o.Generate(context.Background(), models.TemplateConfig{Type: typ})
		assert.ErrorIs(t, err, ErrTypeRequired)
	}
	assert.Equal(t, Idle, o.State())
	assert.Empty(t, svc.Calls())
}

func TestGeneratePrimarySuccess(t *testing.T) {
	svc := &fakeService{docs: map[string]string{"gpt-4o": "```html\n<!DOCTYPE html><html>primary</html>\n```"}}
	var delivered []Result
	o := New(DefaultChain(svc, chainCfg), WithResultHandler(func(r Result) { delivered = append(delivered, r) }))

	res, err := o.Generate(context.Background(), blogConfig)
	require.NoError(t, err)

	assert.Equal(t, "<!DOCTYPE html><html>primary</html>", res.Document)
	assert.Equal(t, "primary", res.Tier)
	assert.Equal(t, "gpt-4o", res.Model)
	assert.Empty(t, res.Failures)
	assert.NotEmpty(t, res.AttemptID)
	assert.Equal(t, Succeeded, o.State())

	calls := svc.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "openai", calls[0].provider)
	assert.Equal(t, mustPrompt(t, BuildPrompt, blogConfig), calls[0].prompt)

	require.Len(t, delivered, 1)
	assert.Equal(t, res.Document, delivered[0].Document)

	last, ok := o.Last()
	require.True(t, ok)
	assert.Equal(t, res.AttemptID, last.AttemptID)
}

func TestGenerateSecondaryUsesSimplePrompt(t *testing.T) {
	svc := &fakeService{
		errs: map[string]error{"gpt-4o": errors.New("openai API error (status 503): overloaded")},
		docs: map[string]string{"gpt-4o-mini": "<html>secondary</html>"},
	}
	o := New(DefaultChain(svc, chainCfg))

	res, err := o.Generate(context.Background(), blogConfig)
	require.NoError(t, err)

	assert.Equal(t, "<html>secondary</html>", res.Document)
	assert.Equal(t, "secondary", res.Tier)
	assert.Equal(t, "gpt-4o-mini", res.Model)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "primary", res.Failures[0].Tier)

	calls := svc.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, mustPrompt(t, BuildSimplePrompt, blogConfig), calls[1].prompt)
}

func TestGenerateFallsBackToSynthesizer(t *testing.T) {
	tests := map[string]*fakeService{
		"both error": {errs: map[string]error{
			"gpt-4o":      errors.New("boom"),
			"gpt-4o-mini": errors.New("boom again"),
		}},
		"both empty": {docs: map[string]string{"gpt-4o": "  ", "gpt-4o-mini": "```html\n```"}},
	}

	for name, svc := range tests {
		t.Run(name, func(t *testing.T) {
			o := New(DefaultChain(svc, chainCfg))
			res, err := o.Generate(context.Background(), blogConfig)
			require.NoError(t, err)

			assert.Equal(t, Succeeded, o.State())
			assert.Equal(t, synth.Synthesize(blogConfig), res.Document)
			assert.Equal(t, "local", res.Tier)
			assert.Len(t, res.Failures, 2)
		})
	}
}

func TestGenerateRemoteTimeoutFallsThrough(t *testing.T) {
	hang := &hangingService{}
	cc := chainCfg
	cc.RemoteTimeout = 20 * time.Millisecond
	o := New(DefaultChain(hang, cc))

	res, err := o.Generate(context.Background(), blogConfig)
	require.NoError(t, err)
	assert.Equal(t, "local", res.Tier)
	require.Len(t, res.Failures, 2)
	assert.Contains(t, res.Failures[0].Error, context.DeadlineExceeded.Error())
}

// hangingService blocks until its context ends.
type hangingService struct{}

func (hangingService) GenerateWithModel(ctx context.Context, _, _, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestGenerateRejectsConcurrentCall(t *testing.T) {
	svc := &fakeService{
		docs:    map[string]string{"gpt-4o": "<html>slow</html>"},
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	o := New(DefaultChain(svc, chainCfg))

	done := make(chan Result, 1)
	go func() {
		res, _ := o.Generate(context.Background(), blogConfig)
		done <- res
	}()

	<-svc.started
	assert.True(t, o.InFlight())
	assert.Equal(t, Generating, o.State())

	_, err := o.Generate(context.Background(), blogConfig)
	assert.ErrorIs(t, err, ErrInFlight)

	close(svc.block)
	res := <-done
	assert.Equal(t, "<html>slow</html>", res.Document)
	assert.Equal(t, Succeeded, o.State())
}

func TestGenerateIgnoresCallerCancellation(t *testing.T) {
	svc := &fakeService{
		docs:    map[string]string{"gpt-4o": "<html>done</html>"},
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	o := New(DefaultChain(svc, chainCfg))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	go func() {
		res, _ := o.Generate(ctx, blogConfig)
		done <- res
	}()

	<-svc.started
	cancel()
	close(svc.block)

	res := <-done
	assert.Equal(t, "primary", res.Tier)
}

func TestGenerateModeration(t *testing.T) {
	t.Run("flagged name skips remote tiers", func(t *testing.T) {
		svc := &fakeService{docs: map[string]string{"gpt-4o": "<html>remote</html>"}}
		mod := fakeModerator{result: &ai.ModerationResult{Safe: false, Categories: []string{"hate"}}}
		o := New(DefaultChain(svc, chainCfg), WithModerator(mod))

		res, err := o.Generate(context.Background(), blogConfig)
		require.NoError(t, err)
		assert.Equal(t, "local", res.Tier)
		assert.Equal(t, []string{"hate"}, res.Flagged)
		assert.Empty(t, svc.Calls())
	})

	t.Run("moderator error fails open", func(t *testing.T) {
		svc := &fakeService{docs: map[string]string{"gpt-4o": "<html>remote</html>"}}
		mod := fakeModerator{err: errors.New("moderation down")}
		o := New(DefaultChain(svc, chainCfg), WithModerator(mod))

		res, err := o.Generate(context.Background(), blogConfig)
		require.NoError(t, err)
		assert.Equal(t, "primary", res.Tier)
	})
}

func TestGenerateWithoutLocalTierCanFail(t *testing.T) {
	svc := &fakeService{errs: map[string]error{"m": errors.New("down")}}
	o := New([]Tier{RemoteTier{Service: svc, Provider: "p", Model: "m"}})

	_, err := o.Generate(context.Background(), blogConfig)
	assert.ErrorIs(t, err, ErrAllTiersFailed)
	assert.Equal(t, Failed, o.State())

	_, ok := o.Last()
	assert.False(t, ok)
}

func TestGenerateRecoversPanickingTier(t *testing.T) {
	o := New([]Tier{panicTier{}, LocalTier{}})

	res, err := o.Generate(context.Background(), blogConfig)
	require.NoError(t, err)
	assert.Equal(t, "local", res.Tier)
	require.Len(t, res.Failures, 1)
	assert.Contains(t, res.Failures[0].Error, "panicked")
}

type panicTier struct{}

func (panicTier) Name() string { return "panic" }

func (panicTier) Attempt(context.Context, models.TemplateConfig) (string, error) {
	panic("provider exploded")
}

func TestDefaultChainWithoutService(t *testing.T) {
	tiers := DefaultChain(nil, chainCfg)
	require.Len(t, tiers, 1)
	assert.Equal(t, "local", tiers[0].Name())
}

func TestLocalTierDelayIsCancellable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	doc, err := LocalTier{Delay: time.Hour}.Attempt(ctx, blogConfig)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, synth.Synthesize(blogConfig), doc)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "generating", Generating.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
}
