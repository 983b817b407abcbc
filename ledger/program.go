package ledger

// Method names as they appear in decoded index transactions.
const (
	MethodMintTicket     = "mint_ticket"
	MethodTransferTicket = "transfer_ticket"
)

// Payment is the payment leg grouped with a transfer invocation.
type Payment struct {
	From     string
	Receiver string
	Amount   uint64
}

type programAsset struct {
	holder string
	seat   string
	price  uint64
}

// Program is the ticket ledger program state machine. It owns the
// canonical truth for asset ownership and resale price enforcement.
//
// The resale cap is a single global per program instance, set by the
// last mint. Keying the cap per event is a known design gap that is
// deliberately not fixed here.
//
// Program is not safe for concurrent use; the hosting ledger serializes
// invocations the way block execution would.
type Program struct {
	organizer      string
	appAddress     string
	maxResalePrice uint64
	nextAssetID    uint64
	assets         map[uint64]*programAsset
}

func NewProgram(organizer string, appAddress string) *Program {
	return &Program{
		organizer:  organizer,
		appAddress: appAddress,
		assets:     map[uint64]*programAsset{},
	}
}

// MintTicket atomically creates a new uniquely-identified asset held in
// custody by the program and records seat/price metadata. Only the
// organizer may mint. All validation happens before any state change,
// so a failed invocation leaves the program untouched.
func (p *Program) MintTicket(sender string, seat string, price uint64) (uint64, error) {
	if sender != p.organizer {
		return 0, AuthorizationError{Reason: "only the organizer may mint tickets"}
	}

	p.maxResalePrice = price

	p.nextAssetID++
	assetID := p.nextAssetID
	p.assets[assetID] = &programAsset{
		holder: p.appAddress,
		seat:   seat,
		price:  price,
	}

	return assetID, nil
}

// TransferTicket reassigns holdership of an asset to the paying caller.
// The program acts as custodian (clawback), so no holder signature is
// required; the payment must target the program address and respect the
// resale cap. Returns the previous holder.
func (p *Program) TransferTicket(sender string, assetID uint64, payment Payment) (string, error) {
	asset, ok := p.assets[assetID]
	if !ok {
		return "", AuthorizationError{Reason: "unknown asset"}
	}
	if payment.Receiver != p.appAddress {
		return "", AuthorizationError{Reason: "payment must be to the program address"}
	}
	if payment.Amount > p.maxResalePrice {
		return "", PriceCapExceededError{
			Payment:        payment.Amount,
			MaxResalePrice: p.maxResalePrice,
		}
	}

	previousHolder := asset.holder
	asset.holder = sender
	asset.price = payment.Amount

	return previousHolder, nil
}

// MaxResalePrice is the unauthenticated global read path.
func (p *Program) MaxResalePrice() uint64 {
	return p.maxResalePrice
}

// Holder returns the current holder of an asset, if it exists.
func (p *Program) Holder(assetID uint64) (string, bool) {
	asset, ok := p.assets[assetID]
	if !ok {
		return "", false
	}
	return asset.holder, true
}
