package domain

// Column names of the source tables. They are matched case-sensitively
// against the header row.
const (
	ColID = "id"

	ColClientTaxID       = "cpfCnpj"
	ColClientSecondaryID = "rg"
	ColClientBirthDate   = "dataNascimento"
	ColClientName        = "nome"
	ColClientDisplayName = "nomeSocial"
	ColClientEmail       = "email"
	ColClientAddress     = "endereco"
	ColClientIncome      = "rendaAnual"
	ColClientNetWorth    = "patrimonio"
	ColClientMarital     = "estadoCivil"
	ColClientBranchCode  = "codigoAgencia"

	ColAccountOwnerTaxID = "cpfCnpjCliente"
	ColAccountKind       = "tipo"
	ColAccountBalance    = "saldo"
	ColAccountLimit      = "limiteCredito"
	ColAccountAvailable  = "creditoDisponivel"

	ColBranchCode    = "codigo"
	ColBranchName    = "nome"
	ColBranchAddress = "endereco"
)
