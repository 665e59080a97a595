package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
)

const defaultModelTimeout = 20 * time.Second

// ModelSynthesizer delegates prose to an external model. The model sees the
// whole catalog as its only source of facts; which place gets attached is
// decided locally, never by the model.
type ModelSynthesizer struct {
	name     string
	client   domain.ModelClient
	timeout  time.Duration
	cache    domain.Cache // optional
	cacheTTL time.Duration
}

func NewModelSynthesizer(name string, client domain.ModelClient, timeout time.Duration, cache domain.Cache, cacheTTL time.Duration) *ModelSynthesizer {
	if timeout <= 0 {
		timeout = defaultModelTimeout
	}
	if cacheTTL <= 0 {
		cache = nil
	}
	return &ModelSynthesizer{name: name, client: client, timeout: timeout, cache: cache, cacheTTL: cacheTTL}
}

func (m *ModelSynthesizer) Name() string { return m.name }

// Synthesize answers for an already matched place. A model refusal for an
// in-scope question falls back to the template answer for that same place.
// The place recovered by SynthesizeViaModel is ignored here since in.Place
// is already the retriever's match.
func (m *ModelSynthesizer) Synthesize(ctx context.Context, in SynthesisInput) (string, error) {
	reply, _, err := m.SynthesizeViaModel(ctx, in.Query, in.Catalog)
	if err != nil {
		return "", err
	}
	if IsModelRefusal(reply) {
		log.Warn().Str("place", in.Place.Name).Str("strategy", m.name).Msg("model refused an in-scope question; using template answer")
		return Render(in.Place, in.Intent), nil
	}
	return reply, nil
}

// SynthesizeViaModel asks the model and recovers the place to attach: the
// retriever's match for the original query first, else the first catalog
// name the reply mentions.
func (m *ModelSynthesizer) SynthesizeViaModel(ctx context.Context, query string, c *catalog.Catalog) (string, *domain.Place, error) {
	system, err := SystemPrompt(c)
	if err != nil {
		return "", nil, err
	}
	key := replyCacheKey(system, query)

	var reply string
	if m.cache != nil {
		if ok, _ := m.cache.Get(ctx, key, &reply); ok && strings.TrimSpace(reply) != "" {
			return reply, attach(query, reply, c), nil
		}
	}

	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	reply, err = m.client.Complete(cctx, []domain.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: query},
	})
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", nil, fmt.Errorf("%w: empty model reply", domain.ErrServiceUnavailable)
	}
	if m.cache != nil {
		_ = m.cache.Set(ctx, key, reply, int(m.cacheTTL.Seconds()))
	}
	return reply, attach(query, reply, c), nil
}

func attach(query, reply string, c *catalog.Catalog) *domain.Place {
	if p := Retrieve(query, c); p != nil {
		return p
	}
	if IsModelRefusal(reply) {
		return nil
	}
	return MentionedIn(reply, c)
}

// IsModelRefusal reports whether reply is the sentinel out-of-scope sentence.
func IsModelRefusal(reply string) bool {
	r := strings.TrimSpace(strings.Trim(strings.TrimSpace(reply), `"`))
	return strings.EqualFold(r, domain.ModelRefusalText)
}

// SystemPrompt embeds the whole catalog as JSON and pins the refusal sentence.
func SystemPrompt(c *catalog.Catalog) (string, error) {
	data, err := json.Marshal(catalog.ToDocs(c))
	if err != nil {
		return "", fmt.Errorf("marshal catalog: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("You are a helpful travel assistant for India. You have access to information about these places: ")
	sb.Write(data)
	sb.WriteString("\n\nYour task is to:\n")
	sb.WriteString("1. Analyze the user's question\n")
	sb.WriteString("2. If the question is about any of the places in the data (timings, location, amenities, description), answer using ONLY the information from the data\n")
	sb.WriteString("3. If the question is outside the scope of the provided travel data, respond with exactly: \"" + domain.ModelRefusalText + "\"\n")
	sb.WriteString("4. Format your responses nicely and be conversational\n")
	sb.WriteString("5. If asked generally about a place, include its timings, location, amenities and description\n\n")
	sb.WriteString("Never state facts that are not in the data.")
	return sb.String(), nil
}

func replyCacheKey(system, query string) string {
	sum := sha1.Sum([]byte(system + "\x00" + strings.ToLower(strings.TrimSpace(query))))
	return "reply:" + hex.EncodeToString(sum[:])
}
