package horizon

import "context"

// RootRequestBuilder targets the server root, which reports versions and
// ledger progress.
type RootRequestBuilder struct {
	requestBuilder
}

func (b *RootRequestBuilder) Execute(ctx context.Context) (*Root, error) {
	root := &Root{}
	if err := b.execute(ctx, root); err != nil {
		return nil, err
	}
	return root, nil
}

type Root struct {
	HorizonVersion         string `json:"horizon_version"`
	CoreVersion            string `json:"core_version"`
	IngestLatestLedger     uint32 `json:"ingest_latest_ledger"`
	HistoryLatestLedger    int32  `json:"history_latest_ledger"`
	HistoryElderLedger     int32  `json:"history_elder_ledger"`
	CoreLatestLedger       int32  `json:"core_latest_ledger"`
	NetworkPassphrase      string `json:"network_passphrase"`
	CurrentProtocolVersion int32  `json:"current_protocol_version"`
}
