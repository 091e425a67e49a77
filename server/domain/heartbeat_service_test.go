package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"goapworld/server/domain"
)

func TestHeartbeatService_SendsPingToWriteCh(t *testing.T) {
	session := domain.NewSession()
	writeCh := make(chan []byte, 16)

	hb := domain.NewHeartbeatService(50*time.Millisecond, 0, session, writeCh)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	go hb.Run(ctx)

	// 少なくとも1つのpingが送信されることを確認
	select {
	case msg := <-writeCh:
		_, payloadHeader, _, err := domain.ParseFrame(msg)
		if err != nil {
			t.Fatalf("ParseFrame failed: %v", err)
		}
		if domain.ControlSubType(payloadHeader.SubType) != domain.ControlSubTypePing {
			t.Fatalf("SubType = %d, want %d", payloadHeader.SubType, domain.ControlSubTypePing)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for ping message")
	}
}

func TestHeartbeatService_StopsOnContextCancel(t *testing.T) {
	session := domain.NewSession()
	writeCh := make(chan []byte, 16)

	hb := domain.NewHeartbeatService(50*time.Millisecond, 0, session, writeCh)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- hb.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("HeartbeatService did not stop after context cancel")
	}
}

func TestHeartbeatService_DropsWhenWriteChFull(t *testing.T) {
	session := domain.NewSession()
	// バッファサイズ0でwriteChが常に満杯になるようにする
	writeCh := make(chan []byte)

	hb := domain.NewHeartbeatService(50*time.Millisecond, 0, session, writeCh)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		hb.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("HeartbeatService blocked on full writeCh")
	}
}

func TestHeartbeatService_TimesOutWithoutPong(t *testing.T) {
	session := domain.NewSession()
	writeCh := make(chan []byte, 16)

	hb := domain.NewHeartbeatService(30*time.Millisecond, 10*time.Millisecond, session, writeCh)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := hb.Run(ctx); !errors.Is(err, domain.ErrHeartbeatTimeout) {
		t.Errorf("Run returned %v, want %v", err, domain.ErrHeartbeatTimeout)
	}
}
