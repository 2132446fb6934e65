package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk layout of a seed corpus override.
type seedFile struct {
	Categories []seedCategory `yaml:"categories"`
}

type seedCategory struct {
	Name     string   `yaml:"name"`
	Examples []string `yaml:"examples"`
}

// LoadSeed reads a seed corpus from a YAML file. Example order follows the
// file so training stays deterministic.
func LoadSeed(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed corpus: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed corpus: %w", err)
	}

	var examples []Example
	for _, cat := range f.Categories {
		for _, desc := range cat.Examples {
			examples = append(examples, Example{Description: desc, Category: cat.Name})
		}
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("seed corpus %s contains no examples", path)
	}
	return examples, nil
}

// WriteSeed saves examples as a seed corpus file, grouped by category in
// first-seen order. New installs get the built-in corpus written out this
// way so users can edit it.
func WriteSeed(path string, examples []Example) error {
	var f seedFile
	idx := make(map[string]int)
	for _, ex := range examples {
		i, ok := idx[ex.Category]
		if !ok {
			i = len(f.Categories)
			idx[ex.Category] = i
			f.Categories = append(f.Categories, seedCategory{Name: ex.Category})
		}
		f.Categories[i].Examples = append(f.Categories[i].Examples, ex.Description)
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encoding seed corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing seed corpus: %w", err)
	}
	return nil
}

// DefaultSeed returns the built-in seed corpus of merchant-pattern examples.
// It gives new installs non-trivial predictions before any corrections exist;
// category names match model.DefaultCategories.
func DefaultSeed() []Example {
	seed := []struct {
		category string
		examples []string
	}{
		{"Income", []string{
			"ACME CORP DIR DEP PAYROLL",
			"EMPLOYER DIRECT DEP SALARY",
			"ACH CREDIT DEPOSIT PAYCHECK",
		}},
		{"Coffee", []string{
			"STARBUCKS STORE 08714",
			"DUNKIN DONUTS 336789",
			"BLUE BOTTLE COFFEE",
			"PEETS COFFEE 12204",
		}},
		{"Groceries", []string{
			"H-E-B ONLINE GROCERY",
			"WHOLE FOODS MARKET 10230",
			"TRADER JOES 702 AUSTIN TX",
			"KROGER 0437 GROCERY",
			"COSTCO WHSE 1234",
		}},
		{"Eating Out", []string{
			"DOORDASH ORDER 8842",
			"UBER EATS PENDING",
			"CHIPOTLE 2390 ONLINE",
			"TST* LOCAL RESTAURANT",
			"SQ * TACO TRUCK",
			"PANERA BREAD 204661",
		}},
		{"Uber/Lyft", []string{
			"UBER TRIP HELP UBER COM",
			"LYFT RIDE TUE 8PM",
		}},
		{"Subscriptions", []string{
			"NETFLIX COM SUBSCRIPTION",
			"SPOTIFY USA MONTHLY",
			"APPLE COM BILL SUBSCRIPTION",
			"HULU 866 3168477",
		}},
		{"Utilities", []string{
			"CITY OF AUSTIN ELECTRIC UTILITY",
			"ATMOS ENERGY NATURAL GAS BILL",
			"WATER BILL PAYMENT UTILITY",
		}},
		{"Rent", []string{
			"OAKWOOD APARTMENT RENT PAYMENT",
			"PROPERTY MGMT LEASE PAYMENT",
		}},
		{"Investments", []string{
			"FID BKG SVC LLC MONEYLINE",
			"VANGUARD BUY INVESTMENT",
			"ACORNS INVEST TRANSFER",
		}},
		{"Credit Card Payment", []string{
			"CHASE CREDIT CRD AUTOPAY",
			"CAPITAL ONE CREDIT CARD PAYMENT",
			"DISCOVER E-PAYMENT",
		}},
		{"Venmo", []string{
			"VENMO PAYMENT 1029384756",
			"VENMO CASHOUT",
		}},
		{"Shopping", []string{
			"AMAZON MKTPLACE PMTS",
			"TARGET 00028387 AUSTIN TX",
			"WALMART SUPERCENTER 1180",
			"BEST BUY 00002677",
		}},
		{"Gas", []string{
			"SHELL OIL 57544267805",
			"CHEVRON 0202477 GAS",
			"EXXONMOBIL 97584514",
		}},
		{"Tolls", []string{
			"HCTRA EZ TAG REBILL",
			"TOLL ROAD AUTHORITY",
		}},
		{"Healthcare", []string{
			"CVS PHARMACY 07595",
			"WALGREENS STORE 5467",
			"AUSTIN REGIONAL CLINIC",
		}},
		{"Entertainment", []string{
			"AMC THEATRES 0462 TICKET",
			"STEAMGAMES COM 4259522985",
			"NINTENDO CD886 2961001",
		}},
		{"Transfer", []string{
			"ONLINE TRANSFER TO SAVINGS",
			"ZELLE TRANSFER CONF 1J2K3L",
		}},
		{"ATM", []string{
			"BKOFAMERICA ATM WITHDRWL",
			"ATM CASH WITHDRAWAL FEE",
		}},
		{"Loan Payment", []string{
			"UPGRADE, INC LOAN PMT",
			"SST PAYMENT LOAN",
		}},
		{"Phone/Internet", []string{
			"ATT DES:PAYMENT WIRELESS",
			"COMCAST CABLE COMM",
			"T-MOBILE AUTO PAY",
		}},
		{"Gym", []string{
			"YMCA OF AUSTIN MEMBERSHIP",
			"PLANET FITNESS CLUB FEES",
		}},
		{"Alcohol", []string{
			"LITTLE WOODROWS BAR",
			"SPEC S LIQUOR 47",
		}},
		{"Travel", []string{
			"SOUTHWEST AIRLINES 5262027",
			"AIRBNB HM52X3Y2ZM",
			"MARRIOTT HOTEL AUSTIN",
		}},
	}

	var examples []Example
	for _, s := range seed {
		for _, desc := range s.examples {
			examples = append(examples, Example{Description: desc, Category: s.category})
		}
	}
	return examples
}
