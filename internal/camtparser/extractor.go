package camtparser

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"atamur/ynab-csv/internal/currencyutils"
	"atamur/ynab-csv/internal/dateutils"
	"atamur/ynab-csv/internal/models"
	"atamur/ynab-csv/internal/textutils"
)

const (
	memoSeparator = " | "
	defaultPayee  = "Transaction"
)

// extractEntry turns one statement entry into output records: one per nested
// transaction detail, or a single entry-level record when no details exist.
// Document order of details is preserved.
func extractEntry(entry models.CAMT053Entry, owner string) []models.Record {
	date := resolveDate(entry)

	details := entry.TxDetails()
	if len(details) == 0 {
		return []models.Record{extractEntryLevel(entry, owner, date)}
	}

	records := make([]models.Record, 0, len(details))
	for _, detail := range details {
		direction := detail.CreditDebit
		if direction == "" {
			direction = entry.CreditDebit
		}
		records = append(records, models.NewRecord(
			date,
			detailPayee(entry, detail, owner, direction),
			detailMemo(entry, detail, direction),
			detailAmount(detail),
			direction,
		))
	}
	return records
}

// resolveDate prefers the booking date over the value date, substituting the
// placeholder when neither parses.
func resolveDate(entry models.CAMT053Entry) time.Time {
	for _, raw := range []string{entry.BookingDate.Value(), entry.ValueDate.Value()} {
		if raw == "" {
			continue
		}
		t, err := dateutils.ParseISODate(raw)
		if err != nil {
			log.WithField("date", raw).Warn("Unparseable entry date, trying fallback")
			continue
		}
		return t
	}
	return dateutils.Placeholder()
}

// detailAmount resolves the detail's amount through its fallback locations.
// Unparsable text yields zero rather than failing the record.
func detailAmount(detail models.CAMT053TxDetail) decimal.Decimal {
	for _, raw := range []string{
		detail.Amount.Value,
		detail.AmountDetails.TxAmt.Amt.Value,
		detail.AmountDetails.InstdAmt.Amt.Value,
	} {
		if strings.TrimSpace(raw) != "" {
			return currencyutils.ParseAmount(raw)
		}
	}
	return decimal.Zero
}

// detailPayee selects the counterparty name for one transaction detail.
// Credits prefer the debtor (who paid us), debits the creditor (whom we
// paid). Placeholder names and the account owner's own name never qualify.
func detailPayee(entry models.CAMT053Entry, detail models.CAMT053TxDetail, owner, direction string) string {
	debtor := detail.RelatedParties.Debtor.Name
	creditor := detail.RelatedParties.Creditor.Name

	candidates := []string{creditor, debtor}
	if direction == models.Credit {
		candidates = []string{debtor, creditor}
	}
	for _, name := range candidates {
		if !textutils.IsPlaceholderOrSelf(name, owner) {
			return name
		}
	}

	return fallbackPayee(entry, detail.RemittanceInfo.Unstructured, owner)
}

// fallbackPayee is the shared tail of the payee chain: entry additional
// info, first unstructured remittance line, the transaction-code label, and
// as a last resort the literal "Transaction".
func fallbackPayee(entry models.CAMT053Entry, unstructured []string, owner string) string {
	if !textutils.IsPlaceholderOrSelf(entry.AdditionalInfo, owner) {
		return entry.AdditionalInfo
	}
	for _, ustrd := range unstructured {
		if textutils.Clean(ustrd) == "" {
			continue
		}
		if !textutils.IsPlaceholderOrSelf(ustrd, owner) {
			return ustrd
		}
		break
	}
	if label := entry.TxCodeLabel(); label != "" {
		return label
	}
	return defaultPayee
}

// detailMemo assembles the memo fragments for one detail in a fixed order,
// deduplicated by exact match with first-occurrence order preserved.
func detailMemo(entry models.CAMT053Entry, detail models.CAMT053TxDetail, direction string) string {
	set := textutils.NewOrderedSet()

	set.Add(textutils.Clean(entry.AdditionalInfo))
	for _, ustrd := range detail.RemittanceInfo.Unstructured {
		set.Add(textutils.Clean(ustrd))
	}
	for _, strd := range detail.RemittanceInfo.Structured {
		addPrefixed(set, "Ref: ", strd.CreditorRef.Ref)
		for _, info := range strd.AdditionalInfo {
			set.Add(textutils.Clean(info))
		}
	}
	set.Add(textutils.Clean(detail.AdditionalInfo))

	addPrefixed(set, "Ref: ", detail.Refs.AcctSvcrRef)
	addNonPlaceholderRef(set, "InstrId: ", detail.Refs.InstrID)
	addNonPlaceholderRef(set, "E2E: ", detail.Refs.EndToEndID)

	if direction == models.Credit {
		addPrefixed(set, "From bank: ", agentLabel(detail.RelatedAgents.DebtorAgent))
	} else {
		addPrefixed(set, "To acct: ", detail.RelatedParties.CreditorAccount.ID())
		addPrefixed(set, "To bank: ", agentLabel(detail.RelatedAgents.CreditorAgent))
	}

	return textutils.Truncate(set.Join(memoSeparator), models.MemoMaxLen)
}

// extractEntryLevel builds the single record for an entry without details.
// The payee chain skips the related-party tiers, which only exist on
// details; the transaction-code descriptor joins the memo only when nothing
// else was collected.
func extractEntryLevel(entry models.CAMT053Entry, owner string, date time.Time) models.Record {
	set := textutils.NewOrderedSet()
	set.Add(textutils.Clean(entry.AdditionalInfo))
	addPrefixed(set, "Ref: ", entry.AcctSvcrRef)
	if len(set.Values()) == 0 {
		set.Add(textutils.Clean(entry.TxCodeLabel()))
	}

	return models.NewRecord(
		date,
		fallbackPayee(entry, nil, owner),
		textutils.Truncate(set.Join(memoSeparator), models.MemoMaxLen),
		currencyutils.ParseAmount(entry.Amount.Value),
		entry.CreditDebit,
	)
}

// agentLabel joins an agent's name and BIC for memo display.
func agentLabel(agent models.CAMT053Agent) string {
	return textutils.Clean(agent.Name + " " + agent.BICFI)
}

func addPrefixed(set *textutils.OrderedSet, prefix, value string) {
	cleaned := textutils.Clean(value)
	if cleaned == "" {
		return
	}
	set.Add(prefix + cleaned)
}

// addNonPlaceholderRef adds a prefixed reference unless the bank filled it
// with the NOTPROVIDED placeholder.
func addNonPlaceholderRef(set *textutils.OrderedSet, prefix, value string) {
	cleaned := textutils.Clean(value)
	if cleaned == "" || strings.EqualFold(cleaned, "NOTPROVIDED") {
		return
	}
	set.Add(prefix + cleaned)
}
