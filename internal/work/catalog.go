package work

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/tupyy/async-services/internal/models"
	srvErrors "github.com/tupyy/async-services/pkg/errors"
	"github.com/tupyy/async-services/pkg/manager"
)

// Params are the string parameters of a work kind.
type Params map[string]string

// Builder turns params into a runnable work.
type Builder func(params Params) (manager.Work, error)

type kind struct {
	description string
	params      []string
	build       Builder
}

// Catalog maps work kind names to builders.
type Catalog struct {
	mu    sync.RWMutex
	kinds map[string]kind
}

// NewCatalog returns a catalog holding the builtin kinds.
func NewCatalog() *Catalog {
	c := &Catalog{kinds: make(map[string]kind)}
	c.Register("sleep", "sleep for duration then return value", []string{"duration", "value"}, buildSleep)
	c.Register("echo", "return value immediately", []string{"value"}, buildEcho)
	c.Register("fail", "return an error with message, benign when expected=true", []string{"message", "expected"}, buildFail)
	c.Register("forever", "block until cancelled", nil, buildForever)
	c.Register("panic", "panic with message", []string{"message"}, buildPanic)
	return c
}

// Register adds or replaces a kind.
func (c *Catalog) Register(name, description string, params []string, b Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kinds[name] = kind{description: description, params: params, build: b}
}

func (c *Catalog) Build(name string, params Params) (manager.Work, error) {
	c.mu.RLock()
	k, ok := c.kinds[name]
	c.mu.RUnlock()
	if !ok {
		return nil, srvErrors.NewUnknownWorkKindError(name)
	}
	if params == nil {
		params = Params{}
	}
	return k.build(params)
}

// Kinds returns the registered kinds sorted by name.
func (c *Catalog) Kinds() []models.WorkKind {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.WorkKind, 0, len(c.kinds))
	for name, k := range c.kinds {
		out = append(out, models.WorkKind{Name: name, Description: k.description, Params: k.params})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func buildSleep(p Params) (manager.Work, error) {
	d, err := time.ParseDuration(p["duration"])
	if err != nil {
		return nil, srvErrors.NewValidationError("duration", err.Error())
	}
	if d < 0 {
		return nil, srvErrors.NewValidationError("duration", "must not be negative")
	}
	value := p["value"]
	return func(ctx context.Context) (any, error) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return value, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}, nil
}

func buildEcho(p Params) (manager.Work, error) {
	value := p["value"]
	return func(context.Context) (any, error) {
		return value, nil
	}, nil
}

func buildFail(p Params) (manager.Work, error) {
	msg := p["message"]
	if msg == "" {
		msg = "work failed"
	}
	expected := false
	if raw, ok := p["expected"]; ok && raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, srvErrors.NewValidationError("expected", fmt.Sprintf("%q is not a boolean", raw))
		}
		expected = v
	}
	return func(context.Context) (any, error) {
		err := errors.New(msg)
		if expected {
			return nil, manager.Expected(err)
		}
		return nil, err
	}, nil
}

func buildForever(Params) (manager.Work, error) {
	return func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, nil
}

func buildPanic(p Params) (manager.Work, error) {
	msg := p["message"]
	if msg == "" {
		msg = "panic work"
	}
	return func(context.Context) (any, error) {
		panic(msg)
	}, nil
}
