package models

import (
	"encoding/xml"
	"strings"
)

// CAMT053Document mirrors the subset of an ISO 20022 camt.053 bank-to-customer
// statement this tool consumes. Field names follow the wire element names so
// the mapping stays obvious next to a sample file.
type CAMT053Document struct {
	XMLName       xml.Name `xml:"Document"`
	BkToCstmrStmt struct {
		Stmts []CAMT053Statement `xml:"Stmt"`
	} `xml:"BkToCstmrStmt"`
}

// CAMT053Statement is one account statement inside a document.
type CAMT053Statement struct {
	ID      string         `xml:"Id"`
	Acct    CAMT053Account `xml:"Acct"`
	Entries []CAMT053Entry `xml:"Ntry"`
}

// CAMT053Account carries the account identification and owner.
type CAMT053Account struct {
	IBAN     string `xml:"Id>IBAN"`
	Currency string `xml:"Ccy"`
	Owner    struct {
		Name string `xml:"Nm"`
	} `xml:"Ownr"`
}

// CAMT053Amount is a monetary amount with its currency attribute.
type CAMT053Amount struct {
	Value    string `xml:",chardata"`
	Currency string `xml:"Ccy,attr"`
}

// CAMT053Date is a date that may arrive as <Dt> or <DtTm>.
type CAMT053Date struct {
	Dt   string `xml:"Dt"`
	DtTm string `xml:"DtTm"`
}

// Value returns whichever representation is present.
func (d CAMT053Date) Value() string {
	if d.Dt != "" {
		return d.Dt
	}
	return d.DtTm
}

// CAMT053BankTxCode is the bank transaction code of an entry, either in the
// standard domain/family form or as a proprietary code.
type CAMT053BankTxCode struct {
	Domain struct {
		Code   string `xml:"Cd"`
		Family struct {
			Code          string `xml:"Cd"`
			SubFamilyCode string `xml:"SubFmlyCd"`
		} `xml:"Fmly"`
	} `xml:"Domn"`
	Proprietary struct {
		Code string `xml:"Cd"`
	} `xml:"Prtry"`
}

// CAMT053Entry is one statement entry. An entry may bundle several underlying
// transactions in NtryDtls, each of which becomes its own output row.
type CAMT053Entry struct {
	Amount       CAMT053Amount     `xml:"Amt"`
	CreditDebit  string            `xml:"CdtDbtInd"`
	BookingDate  CAMT053Date       `xml:"BookgDt"`
	ValueDate    CAMT053Date       `xml:"ValDt"`
	AcctSvcrRef  string            `xml:"AcctSvcrRef"`
	BankTxCode   CAMT053BankTxCode `xml:"BkTxCd"`
	EntryDetails []struct {
		TxDetails []CAMT053TxDetail `xml:"TxDtls"`
	} `xml:"NtryDtls"`
	AdditionalInfo string `xml:"AddtlNtryInf"`
}

// TxDetails flattens the entry's NtryDtls wrappers into one detail list.
func (e CAMT053Entry) TxDetails() []CAMT053TxDetail {
	var details []CAMT053TxDetail
	for _, d := range e.EntryDetails {
		details = append(details, d.TxDetails...)
	}
	return details
}

// TxCodeLabel renders the bank transaction code triple as a short
// space-joined descriptor, falling back to the proprietary code.
func (e CAMT053Entry) TxCodeLabel() string {
	d := e.BankTxCode.Domain
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Code, d.Family.Code, d.Family.SubFamilyCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 && e.BankTxCode.Proprietary.Code != "" {
		return e.BankTxCode.Proprietary.Code
	}
	return strings.Join(parts, " ")
}

// CAMT053Party is a transaction party (debtor or creditor).
type CAMT053Party struct {
	Name string `xml:"Nm"`
}

// CAMT053PartyAccount is a party's account identification.
type CAMT053PartyAccount struct {
	IBAN  string `xml:"Id>IBAN"`
	Other string `xml:"Id>Othr>Id"`
}

// ID returns whichever account identification is present.
func (a CAMT053PartyAccount) ID() string {
	if a.IBAN != "" {
		return a.IBAN
	}
	return a.Other
}

// CAMT053Agent is a financial institution involved in the transaction.
type CAMT053Agent struct {
	BICFI string `xml:"FinInstnId>BICFI"`
	Name  string `xml:"FinInstnId>Nm"`
}

// Label returns the agent's name, falling back to its BIC.
func (a CAMT053Agent) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.BICFI
}

// CAMT053TxDetail is one underlying transaction of an entry.
type CAMT053TxDetail struct {
	Refs struct {
		AcctSvcrRef string `xml:"AcctSvcrRef"`
		InstrID     string `xml:"InstrId"`
		EndToEndID  string `xml:"EndToEndId"`
	} `xml:"Refs"`
	Amount        CAMT053Amount `xml:"Amt"`
	AmountDetails struct {
		TxAmt struct {
			Amt CAMT053Amount `xml:"Amt"`
		} `xml:"TxAmt"`
		InstdAmt struct {
			Amt CAMT053Amount `xml:"Amt"`
		} `xml:"InstdAmt"`
	} `xml:"AmtDtls"`
	CreditDebit    string `xml:"CdtDbtInd"`
	RelatedParties struct {
		Debtor          CAMT053Party        `xml:"Dbtr"`
		DebtorAccount   CAMT053PartyAccount `xml:"DbtrAcct"`
		Creditor        CAMT053Party        `xml:"Cdtr"`
		CreditorAccount CAMT053PartyAccount `xml:"CdtrAcct"`
	} `xml:"RltdPties"`
	RelatedAgents struct {
		DebtorAgent   CAMT053Agent `xml:"DbtrAgt"`
		CreditorAgent CAMT053Agent `xml:"CdtrAgt"`
	} `xml:"RltdAgts"`
	RemittanceInfo struct {
		Unstructured []string `xml:"Ustrd"`
		Structured   []struct {
			CreditorRef struct {
				Ref string `xml:"Ref"`
			} `xml:"CdtrRefInf"`
			AdditionalInfo []string `xml:"AddtlRmtInf"`
		} `xml:"Strd"`
	} `xml:"RmtInf"`
	AdditionalInfo string `xml:"AddtlTxInf"`
}
