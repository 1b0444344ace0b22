package dingsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/egaotan/solana-swap-offer/orchestrator"
	"github.com/egaotan/solana-swap-offer/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

type DingContent struct {
	Content string `json:"content"`
}

type DingAt struct {
	IsAtAll bool `json:"isAtAll"`
}

type DingNotify struct {
	MsgType string      `json:"msgtype"`
	Text    DingContent `json:"text"`
	At      DingAt      `json:"at"`
}

type DingResult struct {
	ErrCode int64  `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// DingSdk posts text messages to a DingTalk robot webhook.
type DingSdk struct {
	url      string
	client   *http.Client
	log      *zap.SugaredLogger
	explorer func(signature string) string
	wg       sync.WaitGroup
}

func NewDingSdk(url string, log *zap.SugaredLogger, explorer func(signature string) string) *DingSdk {
	if log == nil {
		log = utils.NopLog()
	}
	return &DingSdk{
		url:      url,
		client:   &http.Client{Timeout: 5 * time.Second},
		log:      log,
		explorer: explorer,
	}
}

func (sdk *DingSdk) Notify(ctx context.Context, notify *DingNotify) (*DingResult, error) {
	requestJson, err := json.Marshal(notify)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sdk.url, bytes.NewReader(requestJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	resp, err := sdk.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("response status code: %d", resp.StatusCode)
	}
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	dingResult := new(DingResult)
	if err := json.Unmarshal(respBody, dingResult); err != nil {
		return nil, err
	}
	if dingResult.ErrCode != 0 {
		return nil, errors.Errorf("code: %d, err: %s", dingResult.ErrCode, dingResult.ErrMsg)
	}
	return dingResult, nil
}

func (sdk *DingSdk) message(outcome *orchestrator.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "swap offer %s %s (id %d) by %s: %s", outcome.Action, outcome.Offer, outcome.Id, outcome.Signer, outcome.State)
	if outcome.Reason != "" {
		fmt.Fprintf(&b, "\nreason: %s", outcome.Reason)
	}
	for _, signature := range outcome.Signatures {
		link := signature.String()
		if sdk.explorer != nil {
			link = sdk.explorer(link)
		}
		fmt.Fprintf(&b, "\n%s", link)
	}
	return b.String()
}

// Record implements orchestrator.Journal. Only outcomes that may have moved
// funds are sent; failures before submission stay in the log.
func (sdk *DingSdk) Record(outcome *orchestrator.Outcome) {
	if outcome.State == orchestrator.Failed && len(outcome.Signatures) == 0 {
		return
	}
	notify := &DingNotify{
		MsgType: "text",
		Text:    DingContent{Content: sdk.message(outcome)},
		At:      DingAt{IsAtAll: outcome.State == orchestrator.Unconfirmed},
	}
	sdk.wg.Add(1)
	go func() {
		defer sdk.wg.Done()
		if _, err := sdk.Notify(context.Background(), notify); err != nil {
			sdk.log.Warnf("ding notify %s %s err: %s", outcome.Action, outcome.Offer, err)
		}
	}()
}

// Wait blocks until every pending notification is sent or has failed.
func (sdk *DingSdk) Wait() {
	sdk.wg.Wait()
}
