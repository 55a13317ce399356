package util

import (
	"context"
	"testing"
)

func TestLogger(t *testing.T) {
	msgs := []string{}
	ctx := WithLogger(context.Background(), WithLvl(INFO, func(lvl Lvl, msg string) {
		msgs = append(msgs, lvl.String()+" "+msg)
	}))
	Debugf(ctx, "dropped")
	Infof(ctx, "kept %d", 1)
	Errorf(ctx, "kept %d", 2)
	if len(msgs) != 2 || msgs[0] != "INFO kept 1" || msgs[1] != "ERROR kept 2" {
		t.Errorf("got %q", msgs)
	}
	Infof(context.Background(), "no logger, no-op")
}
