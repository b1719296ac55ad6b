package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-shien/internal/events"
	"go-shien/internal/session"
	sessionerrors "go-shien/internal/session/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeSessionTranscriptionRequested fills the pending transcript created
// by the API. No speech-to-text backend is attached, so the content is a
// placeholder naming the media asset that would have been transcribed.
func ConsumeSessionTranscriptionRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	sessionService session.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.session_transcription")
	log.Info("session transcription consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("session transcription consumer stopped")
				return
			}
			log.Error("fetch transcription request message failed", zap.Error(err))
			continue
		}

		var event events.SessionTranscriptionRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode transcription request event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		content := fmt.Sprintf("(automatic transcription pending integration; media asset %s)", event.MediaAssetID)
		_, err = sessionService.CompleteTranscription(ctx, event.OrganizationID, event.TranscriptID, content)
		if err != nil {
			if errors.Is(err, sessionerrors.ErrTranscriptNotFound) {
				log.Warn("transcript for event no longer exists, skipping",
					zap.String("transcript_id", event.TranscriptID),
					zap.String("session_id", event.SessionID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("complete transcription failed",
				zap.String("transcript_id", event.TranscriptID),
				zap.String("session_id", event.SessionID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit transcription request message failed", zap.Error(err))
			continue
		}

		log.Info("transcript completed from transcription request",
			zap.String("transcript_id", event.TranscriptID),
			zap.String("session_id", event.SessionID),
		)
	}
}
