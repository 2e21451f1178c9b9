package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

var toolSyncLatestWorkout = mcp.NewTool("sync_latest_workout",
	mcp.WithDescription("Fetch the most recent Hevy workout and write it to the Notion page unless it was already synced. Returns the run status (synced, skipped, no_workouts) and any write errors."),
)

var toolPreviewLatestWorkout = mcp.NewTool("preview_latest_workout",
	mcp.WithDescription("Fetch the most recent Hevy workout and return the text that would be written to Notion, without writing anything."),
)

var toolGetSyncState = mcp.NewTool("get_sync_state",
	mcp.WithDescription("Return the id of the last workout synced to Notion, if any."),
)

var toolClearSyncState = mcp.NewTool("clear_sync_state",
	mcp.WithDescription("Forget the last synced workout id so the next sync writes the latest workout again."),
)

type syncStateResult struct {
	LastWorkoutID string `json:"last_workout_id"`
	Present       bool   `json:"present"`
}

func (h *handlers) syncLatestWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := h.syncer.Run(ctx)
	if err != nil {
		h.log.Error("mcp sync_latest_workout", "error", err)
		return mcp.NewToolResultError("sync failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	result.IsError = res.Err() != nil
	return result, nil
}

func (h *handlers) previewLatestWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := h.syncer.Preview(ctx)
	if err != nil {
		h.log.Error("mcp preview_latest_workout", "error", err)
		return mcp.NewToolResultError("preview failed: " + err.Error()), nil
	}
	if p == nil {
		return mcp.NewToolResultText("Hevy returned no workouts."), nil
	}

	result, err := mcp.NewToolResultJSON(p)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSyncState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok, err := h.syncer.LastWorkoutID(ctx)
	if err != nil {
		h.log.Error("mcp get_sync_state", "error", err)
		return mcp.NewToolResultError("reading sync state failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(syncStateResult{LastWorkoutID: id, Present: ok})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) clearSyncState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.syncer.Reset(ctx); err != nil {
		h.log.Error("mcp clear_sync_state", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Last workout ID cleared successfully"), nil
}
