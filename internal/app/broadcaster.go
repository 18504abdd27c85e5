package app

import "context"

// nopBroadcaster se usa cuando no hay hub (CLI, tests de services).
type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(context.Context, string, any) error { return nil }
