package correlator

import (
	"testing"

	"github.com/jarust-go/jarust/japrotocol"
)

func TestDispatchCompletesWaitAckOnAnyFrame(t *testing.T) {
	c := New(8)
	ch := c.Register("txn1", WaitAck)

	handled := c.Dispatch(japrotocol.Frame{Transaction: "txn1", Janus: japrotocol.KindAck})
	if !handled {
		t.Fatal("expected Dispatch to report handled")
	}

	res := <-ch
	if res.Frame.Janus != japrotocol.KindAck {
		t.Errorf("got kind %q, want ack", res.Frame.Janus)
	}
	if c.Len() != 0 {
		t.Error("expected slot to be removed after completion")
	}
}

func TestDispatchSwallowsAckForWaitResponse(t *testing.T) {
	c := New(8)
	ch := c.Register("txn2", WaitResponse)

	handled := c.Dispatch(japrotocol.Frame{Transaction: "txn2", Janus: japrotocol.KindAck})
	if !handled {
		t.Fatal("expected ack to be swallowed (handled=true) for wait-for-response")
	}
	select {
	case <-ch:
		t.Fatal("ack must not resolve a wait-for-response slot")
	default:
	}
	if c.Len() != 1 {
		t.Error("slot must remain registered after swallowing the ack")
	}

	handled = c.Dispatch(japrotocol.Frame{Transaction: "txn2", Janus: japrotocol.KindEvent})
	if !handled {
		t.Fatal("expected terminal frame to be handled")
	}
	res := <-ch
	if res.Frame.Janus != japrotocol.KindEvent {
		t.Errorf("got kind %q, want event", res.Frame.Janus)
	}
	if c.Len() != 0 {
		t.Error("expected slot to be removed after terminal completion")
	}
}

func TestDispatchUnknownTransactionNotHandled(t *testing.T) {
	c := New(8)
	if c.Dispatch(japrotocol.Frame{Transaction: "ghost", Janus: japrotocol.KindEvent}) {
		t.Error("expected unknown transaction to be unhandled so it can be routed")
	}
}

func TestPoisonAllCompletesEveryOutstandingSlot(t *testing.T) {
	c := New(8)
	ch1 := c.Register("a", WaitResponse)
	ch2 := c.Register("b", WaitAck)

	boom := errOops{}
	c.PoisonAll(boom)

	r1 := <-ch1
	r2 := <-ch2
	if r1.Err != boom || r2.Err != boom {
		t.Error("expected both slots to be poisoned with the same error")
	}
	if c.Len() != 0 {
		t.Error("expected correlator to be empty after PoisonAll")
	}
}

type errOops struct{}

func (errOops) Error() string { return "oops" }
