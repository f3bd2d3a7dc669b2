package camtparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log = logrus.New()
	log.SetLevel(logrus.DebugLevel)
}

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Document>
  <BkToCstmrStmt>
    <Stmt>
      <Id>STMT-1</Id>
      <Acct>
        <Id><IBAN>CH9300762011623852957</IBAN></Id>
        <Ccy>CHF</Ccy>
        <Ownr><Nm>Jane Doe</Nm></Ownr>
      </Acct>
      <Ntry>
        <Amt Ccy="CHF">300.00</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <BookgDt><Dt>2025-02-03</Dt></BookgDt>
        <ValDt><Dt>2025-02-04</Dt></ValDt>
        <BkTxCd><Domn><Cd>PMNT</Cd><Fmly><Cd>ICDT</Cd></Fmly></Domn></BkTxCd>
        <NtryDtls>
          <TxDtls>
            <Refs><EndToEndId>E2E-001</EndToEndId><InstrId>NOTPROVIDED</InstrId></Refs>
            <Amt Ccy="CHF">100.00</Amt>
            <CdtDbtInd>DBIT</CdtDbtInd>
            <RltdPties>
              <Cdtr><Nm>Landlord GmbH</Nm></Cdtr>
              <CdtrAcct><Id><IBAN>CH5604835012345678009</IBAN></Id></CdtrAcct>
            </RltdPties>
            <RltdAgts><CdtrAgt><FinInstnId><BICFI>POFICHBE</BICFI></FinInstnId></CdtrAgt></RltdAgts>
            <RmtInf><Ustrd>Rent February</Ustrd></RmtInf>
          </TxDtls>
          <TxDtls>
            <Amt Ccy="CHF">80.00</Amt>
            <CdtDbtInd>DBIT</CdtDbtInd>
            <RltdPties><Cdtr><Nm>Insurance SA</Nm></Cdtr></RltdPties>
            <RmtInf><Ustrd>Policy 42</Ustrd></RmtInf>
          </TxDtls>
          <TxDtls>
            <AmtDtls><TxAmt><Amt Ccy="CHF">120.00</Amt></TxAmt></AmtDtls>
            <CdtDbtInd>DBIT</CdtDbtInd>
            <RltdPties><Cdtr><Nm>Utility AG</Nm></Cdtr></RltdPties>
          </TxDtls>
        </NtryDtls>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

func TestParseDetailFanOut(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)
	require.Len(t, records, 3)

	for _, r := range records {
		assert.Equal(t, "03/02/2025", r.Date)
		assert.Empty(t, r.Inflow)
		assert.NotEmpty(t, r.Outflow)
	}

	assert.Equal(t, "Landlord GmbH", records[0].Payee)
	assert.Equal(t, "100.00", records[0].Outflow)
	assert.Equal(t, "Insurance SA", records[1].Payee)
	assert.Equal(t, "80.00", records[1].Outflow)
	assert.Equal(t, "Utility AG", records[2].Payee)
	assert.Equal(t, "120.00", records[2].Outflow)
}

func TestParseMemoAssembly(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)
	require.Len(t, records, 3)

	memo := records[0].Memo
	assert.Contains(t, memo, "Rent February")
	assert.Contains(t, memo, "E2E: E2E-001")
	assert.Contains(t, memo, "To acct: CH5604835012345678009")
	assert.Contains(t, memo, "To bank: POFICHBE")
	// NOTPROVIDED instruction ids contribute nothing.
	assert.NotContains(t, memo, "InstrId")
}

func TestSelfReferenceSuppression(t *testing.T) {
	xml := `<?xml version="1.0"?>
<Document><BkToCstmrStmt><Stmt>
  <Acct><Ownr><Nm>Jane Doe</Nm></Ownr></Acct>
  <Ntry>
    <Amt Ccy="CHF">50.00</Amt>
    <CdtDbtInd>CRDT</CdtDbtInd>
    <BookgDt><Dt>2025-02-05</Dt></BookgDt>
    <NtryDtls><TxDtls>
      <Amt Ccy="CHF">50.00</Amt>
      <CdtDbtInd>CRDT</CdtDbtInd>
      <RltdPties>
        <Dbtr><Nm>Jane Doe</Nm></Dbtr>
        <Cdtr><Nm>NOTPROVIDED</Nm></Cdtr>
      </RltdPties>
      <RmtInf><Ustrd>Savings transfer</Ustrd></RmtInf>
    </TxDtls></NtryDtls>
  </Ntry>
</Stmt></BkToCstmrStmt></Document>`

	records, err := Parse(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.NotEqual(t, "Jane Doe", records[0].Payee)
	assert.NotEqual(t, "NOTPROVIDED", records[0].Payee)
	assert.Equal(t, "Savings transfer", records[0].Payee)
	assert.Equal(t, "50.00", records[0].Inflow)
	assert.Empty(t, records[0].Outflow)
}

func TestMemoDedup(t *testing.T) {
	xml := `<?xml version="1.0"?>
<Document><BkToCstmrStmt><Stmt>
  <Acct><Ownr><Nm>Jane Doe</Nm></Ownr></Acct>
  <Ntry>
    <Amt Ccy="CHF">10.00</Amt>
    <CdtDbtInd>DBIT</CdtDbtInd>
    <BookgDt><Dt>2025-02-06</Dt></BookgDt>
    <AddtlNtryInf>Coffee Shop</AddtlNtryInf>
    <NtryDtls><TxDtls>
      <Amt Ccy="CHF">10.00</Amt>
      <RltdPties><Cdtr><Nm>Coffee Shop</Nm></Cdtr></RltdPties>
      <RmtInf><Ustrd>Coffee Shop</Ustrd></RmtInf>
    </TxDtls></NtryDtls>
  </Ntry>
</Stmt></BkToCstmrStmt></Document>`

	records, err := Parse(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 1, strings.Count(records[0].Memo, "Coffee Shop"))
}

func TestEntryWithoutDetails(t *testing.T) {
	xml := `<?xml version="1.0"?>
<Document><BkToCstmrStmt><Stmt>
  <Acct><Ownr><Nm>Jane Doe</Nm></Ownr></Acct>
  <Ntry>
    <Amt Ccy="CHF">15.80</Amt>
    <CdtDbtInd>DBIT</CdtDbtInd>
    <ValDt><Dt>2025-02-07</Dt></ValDt>
    <AcctSvcrRef>SVCR-9</AcctSvcrRef>
    <BkTxCd><Domn><Cd>PMNT</Cd></Domn></BkTxCd>
    <AddtlNtryInf>Card payment coffee</AddtlNtryInf>
  </Ntry>
</Stmt></BkToCstmrStmt></Document>`

	records, err := Parse(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "07/02/2025", r.Date)
	assert.Equal(t, "Card payment coffee", r.Payee)
	assert.Contains(t, r.Memo, "Card payment coffee")
	assert.Contains(t, r.Memo, "Ref: SVCR-9")
	assert.Equal(t, "15.80", r.Outflow)
}

func TestEntryWithoutDetailsTxCodeFallback(t *testing.T) {
	xml := `<?xml version="1.0"?>
<Document><BkToCstmrStmt><Stmt>
  <Acct><Ownr><Nm>Jane Doe</Nm></Ownr></Acct>
  <Ntry>
    <Amt Ccy="CHF">5.00</Amt>
    <CdtDbtInd>DBIT</CdtDbtInd>
    <BookgDt><Dt>2025-02-08</Dt></BookgDt>
    <BkTxCd><Domn><Cd>PMNT</Cd><Fmly><Cd>CCRD</Cd></Fmly></Domn></BkTxCd>
  </Ntry>
</Stmt></BkToCstmrStmt></Document>`

	records, err := Parse(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Nothing else collected, so the transaction code fills payee and memo.
	assert.Equal(t, "PMNT CCRD", records[0].Payee)
	assert.Equal(t, "PMNT CCRD", records[0].Memo)
}

func TestPayeeDefaultsToTransaction(t *testing.T) {
	xml := `<?xml version="1.0"?>
<Document><BkToCstmrStmt><Stmt>
  <Ntry>
    <Amt Ccy="CHF">1.00</Amt>
    <CdtDbtInd>DBIT</CdtDbtInd>
    <BookgDt><Dt>2025-02-09</Dt></BookgDt>
  </Ntry>
</Stmt></BkToCstmrStmt></Document>`

	records, err := Parse(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Transaction", records[0].Payee)
}

func TestParseMissingDateUsesPlaceholder(t *testing.T) {
	xml := `<?xml version="1.0"?>
<Document><BkToCstmrStmt><Stmt>
  <Ntry>
    <Amt Ccy="CHF">1.00</Amt>
    <CdtDbtInd>DBIT</CdtDbtInd>
  </Ntry>
</Stmt></BkToCstmrStmt></Document>`

	records, err := Parse(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "01/01/2000", records[0].Date)
}

func TestParseRejectsInvalidXML(t *testing.T) {
	_, err := Parse(strings.NewReader("not xml at all"))
	assert.Error(t, err)
}

func TestValidateFormat(t *testing.T) {
	dir := t.TempDir()

	validFile := filepath.Join(dir, "valid.xml")
	require.NoError(t, os.WriteFile(validFile, []byte(sampleXML), 0600))

	invalidFile := filepath.Join(dir, "invalid.xml")
	require.NoError(t, os.WriteFile(invalidFile, []byte("<Document><Other/></Document>"), 0600))

	ok, err := ValidateFormat(validFile)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = ValidateFormat(invalidFile)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestConvertToCSV(t *testing.T) {
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "stmt.xml")
	outputFile := filepath.Join(dir, "stmt.csv")
	require.NoError(t, os.WriteFile(inputFile, []byte(sampleXML), 0600))

	require.NoError(t, ConvertToCSV(inputFile, outputFile))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "Date,Payee,Category,Memo,Outflow,Inflow", lines[0])
	assert.Len(t, lines, 4)
}
