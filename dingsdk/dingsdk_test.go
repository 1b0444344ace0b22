package dingsdk

import (
	"context"
	"encoding/json"
	"github.com/egaotan/solana-swap-offer/orchestrator"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type robot struct {
	lock     sync.Mutex
	received []*DingNotify
	result   string
}

func newRobot(t *testing.T, result string) (*robot, *httptest.Server) {
	r := &robot{result: result}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var notify DingNotify
		if err := json.NewDecoder(req.Body).Decode(&notify); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		r.lock.Lock()
		r.received = append(r.received, &notify)
		r.lock.Unlock()
		_, _ = w.Write([]byte(r.result))
	}))
	t.Cleanup(server.Close)
	return r, server
}

func TestNotify(t *testing.T) {
	r, server := newRobot(t, `{"errcode":0,"errmsg":"ok"}`)
	sdk := NewDingSdk(server.URL, nil, nil)
	result, err := sdk.Notify(context.Background(), &DingNotify{MsgType: "text", Text: DingContent{Content: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", result.ErrMsg)
	require.Len(t, r.received, 1)
	assert.Equal(t, "hello", r.received[0].Text.Content)
}

func TestNotify_RobotError(t *testing.T) {
	_, server := newRobot(t, `{"errcode":310000,"errmsg":"keywords not in content"}`)
	sdk := NewDingSdk(server.URL, nil, nil)
	_, err := sdk.Notify(context.Background(), &DingNotify{MsgType: "text"})
	assert.Error(t, err)
}

func TestRecord(t *testing.T) {
	r, server := newRobot(t, `{"errcode":0,"errmsg":"ok"}`)
	sdk := NewDingSdk(server.URL, nil, func(signature string) string { return "https://explorer/" + signature })
	offer := solana.NewWallet().PublicKey()

	sdk.Record(&orchestrator.Outcome{Action: swap.ActionMake, Offer: offer, State: orchestrator.Failed, Reason: "invalid"})
	sdk.Record(&orchestrator.Outcome{
		Action:     swap.ActionTake,
		Offer:      offer,
		Id:         42,
		Signatures: []solana.Signature{{1}},
		State:      orchestrator.Unconfirmed,
		Reason:     "block height exceeded",
	})
	sdk.Wait()

	require.Len(t, r.received, 1)
	content := r.received[0].Text.Content
	assert.Contains(t, content, "take")
	assert.Contains(t, content, "unconfirmed")
	assert.Contains(t, content, "https://explorer/"+solana.Signature{1}.String())
	assert.True(t, r.received[0].At.IsAtAll)
}
