package domain

// TransferTxParams is the fully resolved input for the two-leg transfer
// transaction. Amounts are minor units; policy lookups and tax math
// happen before the transaction starts.
type TransferTxParams struct {
	SenderUUID      string
	ReceiverUUID    string
	CurrencyType    string
	Amount          int64
	Tax             int64
	Received        int64
	SenderMinimum   int64
	ReceiverInitial int64
	SenderReason    Reason
	ReceiverReason  Reason
}
