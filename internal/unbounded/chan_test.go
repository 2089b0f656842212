package unbounded

import (
	"testing"
	"time"
)

func TestChanFIFOOrder(t *testing.T) {
	c := New[int]()
	for i := 0; i < 5; i++ {
		c.Send(i)
	}
	for i := 0; i < 5; i++ {
		v, ok := c.Recv()
		if !ok || v != i {
			t.Fatalf("Recv() = (%d, %v), want (%d, true)", v, ok, i)
		}
	}
}

func TestChanRecvBlocksUntilSend(t *testing.T) {
	c := New[string]()
	done := make(chan string, 1)
	go func() {
		v, _ := c.Recv()
		done <- v
	}()

	select {
	case <-done:
		t.Fatal("Recv returned before any Send")
	case <-time.After(20 * time.Millisecond):
	}

	c.Send("hello")
	select {
	case v := <-done:
		if v != "hello" {
			t.Errorf("got %q, want hello", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv never returned after Send")
	}
}

func TestChanCloseUnblocksRecv(t *testing.T) {
	c := New[int]()
	done := make(chan bool, 1)
	go func() {
		_, ok := c.Recv()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	c.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("expected ok=false after Close with nothing buffered")
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not unblock Recv")
	}
}

func TestChanDrainsBeforeReportingClosed(t *testing.T) {
	c := New[int]()
	c.Send(1)
	c.Close()

	v, ok := c.Recv()
	if !ok || v != 1 {
		t.Fatalf("expected to drain buffered value before close, got (%d, %v)", v, ok)
	}
	if _, ok := c.Recv(); ok {
		t.Error("expected ok=false once drained")
	}
}
