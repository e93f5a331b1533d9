package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"bookstore-catalog/internal/shared/datagen"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpSearch Operation = "search"
	OpCreate Operation = "create"
)

const booksPath = "/api/v1/books"

// Runner sends scenario traffic to one catalog service.
type Runner struct {
	BaseURL string
	Client  *http.Client
}

func NewRunner(baseURL string, timeout time.Duration) *Runner {
	return &Runner{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Run drives sc until its duration elapses or ctx is cancelled. When ctx is
// cancelled the partial result is returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context, sc Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := r.checkHealth(ctx); err != nil {
		return nil, err
	}
	if sc.Seed {
		// Seeding is best effort; an empty catalog still gets list and create traffic.
		if err := r.seed(ctx); err != nil {
			log.Warn().Err(err).Str("scenario", sc.Name).Msg("load test seed failed")
		}
	}

	limit := rate.Inf
	if sc.RPS > 0 {
		limit = rate.Limit(sc.RPS)
	}
	limiter := rate.NewLimiter(limit, sc.VUs)
	rec := newRecorder()
	ids := &idPool{}

	runCtx, cancel := context.WithTimeout(ctx, sc.Duration)
	defer cancel()

	started := time.Now()
	g, gctx := errgroup.WithContext(runCtx)
	for i := 0; i < sc.VUs; i++ {
		vu := &virtualUser{
			runner: r,
			mix:    sc.Mix,
			gen:    datagen.New(uint64(started.UnixNano()) + uint64(i)),
			ids:    ids,
			rec:    rec,
		}
		g.Go(func() error {
			for {
				if err := limiter.Wait(gctx); err != nil {
					return nil
				}
				vu.step(gctx)
			}
		})
	}
	_ = g.Wait()

	res := rec.result(sc, time.Since(started))
	log.Info().
		Str("scenario", sc.Name).
		Int("requests", res.Requests).
		Int("failures", res.Failures).
		Bool("passed", res.Passed).
		Msg("load test finished")

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func (r *Runner) checkHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	res, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", res.StatusCode)
	}
	return nil
}

func (r *Runner) seed(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/seed-data", nil)
	if err != nil {
		return err
	}
	res, err := r.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode >= 300 {
		return fmt.Errorf("seed returned %d", res.StatusCode)
	}
	return nil
}

// idPool collects book ids seen during the run so get requests hit real rows.
type idPool struct {
	mu  sync.RWMutex
	ids []string
}

const maxPooledIDs = 1000

func (p *idPool) add(ids ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		if len(p.ids) >= maxPooledIDs {
			return
		}
		p.ids = append(p.ids, id)
	}
}

func (p *idPool) random(n func(int) int) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.ids) == 0 {
		return "", false
	}
	return p.ids[n(len(p.ids))], true
}

type virtualUser struct {
	runner *Runner
	mix    Mix
	gen    *datagen.Generator
	ids    *idPool
	rec    *recorder
}

type bookRef struct {
	ID string `json:"id"`
}

func (vu *virtualUser) step(ctx context.Context) {
	op := vu.mix.pick(vu.gen.IntN(vu.mix.total()))
	if op == OpGet {
		if _, ok := vu.ids.random(vu.gen.IntN); !ok {
			op = OpList
		}
	}

	var (
		method = http.MethodGet
		target string
		body   []byte
	)
	switch op {
	case OpList:
		target = booksPath + "?page=" + strconv.Itoa(1+vu.gen.IntN(3)) + "&pageSize=10"
	case OpGet:
		id, _ := vu.ids.random(vu.gen.IntN)
		target = booksPath + "/" + id
	case OpSearch:
		target = booksPath + "/search?query=" + url.QueryEscape(vu.gen.SearchTerm())
	case OpCreate:
		method = http.MethodPost
		target = booksPath
		body, _ = json.Marshal(vu.gen.Book())
	}

	status, payload, latency, err := vu.runner.do(ctx, method, target, body)
	if err != nil && ctx.Err() != nil {
		// The run ended mid-request.
		return
	}
	vu.rec.record(op, status, latency, err)

	switch {
	case op == OpList && status == http.StatusOK:
		var refs []bookRef
		if json.Unmarshal(payload, &refs) == nil {
			for _, ref := range refs {
				vu.ids.add(ref.ID)
			}
		}
	case op == OpCreate && status == http.StatusCreated:
		var ref bookRef
		if json.Unmarshal(payload, &ref) == nil && ref.ID != "" {
			vu.ids.add(ref.ID)
		}
	}
}

func (r *Runner) do(ctx context.Context, method, target string, body []byte) (int, []byte, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+target, reader)
	if err != nil {
		return 0, nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := r.Client.Do(req)
	if err != nil {
		return 0, nil, time.Since(start), err
	}
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	latency := time.Since(start)
	if err != nil && !errors.Is(err, io.EOF) {
		return res.StatusCode, nil, latency, err
	}
	return res.StatusCode, payload, latency, nil
}
