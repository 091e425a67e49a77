package application

import (
	"context"
	"log/slog"

	"goapworld/server/domain"
)

// ArenaApplication はRoomから呼ばれ、フィールドを1tick進めてスナップショットを返すApplicationです。
type ArenaApplication struct {
	field *Field
}

func NewArenaApplication(field *Field) *ArenaApplication {
	return &ArenaApplication{field: field}
}

func (app *ArenaApplication) Field() *Field {
	return app.field
}

func (app *ArenaApplication) Tick(ctx context.Context) []byte {
	app.field.Step(ctx)

	frame, err := domain.EncodeSnapshotFrame(app.field.Snapshot())
	if err != nil {
		slog.WarnContext(ctx, "snapshot dropped", "tick", app.field.Tick(), "err", err)
		return nil
	}
	return frame
}
