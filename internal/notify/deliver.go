package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Messenger is the provider send call, one message per device token.
// *messaging.Client satisfies it; tests inject a fake. The handle is passed in
// at construction so the engine never touches process-global provider state.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Message is the provider-agnostic payload handed to the engine.
type Message struct {
	Title string
	Body  string
	Data  map[string]interface{}
}

// Result summarizes one delivery pass. It is returned to callers but never
// surfaced to the HTTP client.
type Result struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Engine sends one push per active device token of a recipient set and prunes
// tokens that fail. Delivery is best-effort: it runs after the notification
// records are persisted and its failures never roll anything back.
type Engine struct {
	tokens    repository.DeviceTokenRepository
	messenger Messenger
}

func NewEngine(tokens repository.DeviceTokenRepository, messenger Messenger) *Engine {
	return &Engine{tokens: tokens, messenger: messenger}
}

// Deliver fans the message out to every active token of the recipient set.
// Zero tokens is a normal, frequent outcome and returns {0,0} without error.
// Any per-token send error counts as failed and deletes that token record
// outright: a failed token is assumed permanently invalid, re-registration is
// required.
func (e *Engine) Deliver(ctx context.Context, recipientIDs []uuid.UUID, msg Message) Result {
	var result Result
	if e.messenger == nil || len(recipientIDs) == 0 {
		return result
	}

	tokens, err := e.tokens.FindActiveByUserIDs(recipientIDs)
	if err != nil {
		log.Error().Err(err).Msg("device token lookup failed, skipping push delivery")
		return result
	}
	if len(tokens) == 0 {
		return result
	}

	data := toProviderDataMap(msg.Data)
	for _, token := range tokens {
		_, err := e.messenger.Send(ctx, &messaging.Message{
			Notification: &messaging.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data:  data,
			Token: token.Token,
		})
		if err != nil {
			result.Failed++
			log.Warn().Err(err).Str("token", token.Token).Msg("push send failed, pruning token")
			if err := e.tokens.DeleteByToken(token.Token); err != nil {
				log.Error().Err(err).Str("token", token.Token).Msg("failed to prune dead token")
			}
			continue
		}
		result.Sent++
	}

	log.Info().Int("sent", result.Sent).Int("failed", result.Failed).
		Str("title", msg.Title).Msg("push delivery pass finished")
	return result
}

// toProviderDataMap coerces every data value to a string at the engine edge.
// The provider requires string-typed map values; a number or object smuggled
// through causes a hard send failure, so the coercion lives here and nowhere
// else.
func toProviderDataMap(data map[string]interface{}) map[string]string {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]string, len(data))
	for key, value := range data {
		switch typed := value.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = typed
		case bool:
			out[key] = strconv.FormatBool(typed)
		case int:
			out[key] = strconv.Itoa(typed)
		case int64:
			out[key] = strconv.FormatInt(typed, 10)
		case float64:
			out[key] = strconv.FormatFloat(typed, 'f', -1, 64)
		default:
			raw, err := json.Marshal(typed)
			if err != nil {
				out[key] = fmt.Sprintf("%v", typed)
				continue
			}
			out[key] = string(raw)
		}
	}
	return out
}
