package service

import (
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	ledgerv1 "github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

func expenseToProto(e models.Expense) *ledgerv1.Expense {
	pe := &ledgerv1.Expense{
		Id:               e.ID,
		Description:      e.Description,
		Amount:           formatMoney(e.Amount),
		PayerName:        e.Payer,
		ParticipantNames: e.Participants,
		CreatedAt:        e.CreatedAt,
	}
	if e.IsCustomSplit() {
		pe.Shares = make(map[string]string, len(e.Shares))
		for name, share := range e.Shares {
			pe.Shares[name] = formatMoney(share)
		}
	}

	splits := calculator.SplitShares(e)
	pe.Splits = make([]*ledgerv1.Share, len(splits))
	for i, sh := range splits {
		pe.Splits[i] = &ledgerv1.Share{Name: sh.Participant, Amount: formatMoney(sh.Amount)}
	}
	return pe
}

// expenseInputFromProto parses the amount of a request. Shares are passed
// through unparsed so the ledger reports payer and participant errors first.
func expenseInputFromProto(req *ledgerv1.AddExpenseRequest) (ledger.ExpenseInput, error) {
	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		return ledger.ExpenseInput{}, err
	}

	return ledger.ExpenseInput{
		Description:  req.Description,
		Amount:       amount,
		Payer:        req.PayerName,
		Participants: req.ParticipantNames,
		RawShares:    req.Shares,
	}, nil
}
