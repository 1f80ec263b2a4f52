package pipeline

// Default source locations: CSV exports of the three sheets of the
// reference spreadsheet.
const (
	DefaultClientsURL  = "https://docs.google.com/spreadsheets/d/1PBN_HQOi5ZpKDd63mouxttFvvCwtmY97Tb5if5_cdBA/gviz/tq?tqx=out:csv&sheet=clientes"
	DefaultAccountsURL = "https://docs.google.com/spreadsheets/d/1PBN_HQOi5ZpKDd63mouxttFvvCwtmY97Tb5if5_cdBA/gviz/tq?tqx=out:csv&sheet=contas"
	DefaultBranchesURL = "https://docs.google.com/spreadsheets/d/1PBN_HQOi5ZpKDd63mouxttFvvCwtmY97Tb5if5_cdBA/gviz/tq?tqx=out:csv&sheet=agencias"
)

// Table names used in logs and errors.
const (
	TableClients  = "clients"
	TableAccounts = "accounts"
	TableBranches = "branches"
)
