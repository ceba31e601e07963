package drip

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidWorkItem = errors.New("invalid work item")

// WorkItem references an already persisted request. It is delivered at least once.
type WorkItem struct {
	RequestID int64  `json:"requestId"`
	Address   string `json:"address"`
	IP        string `json:"ip"`
}

func DecodeWorkItem(data []byte) (WorkItem, error) {
	var item WorkItem
	err := json.Unmarshal(data, &item)
	if err != nil {
		return WorkItem{}, errors.Join(ErrInvalidWorkItem, err)
	}

	if item.RequestID <= 0 {
		return WorkItem{}, errors.Join(ErrInvalidWorkItem, fmt.Errorf("request id: %d", item.RequestID))
	}

	return item, nil
}

func (w WorkItem) Encode() ([]byte, error) {
	return json.Marshal(w)
}
