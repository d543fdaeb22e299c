package domain

// BusinessUnit is a node in the organisation tree. ManagerID points at the
// Position that leads the unit; it is a reference, not ownership.
type BusinessUnit struct {
	ID        int64
	Name      string
	Type      string
	ParentID  *int64
	ManagerID *int64
}

const (
	DefaultBusinessUnitType = "businessunit"
	DefaultPositionType     = "position"
)

func (b *BusinessUnit) EntityKind() Kind    { return KindBusinessUnit }
func (b *BusinessUnit) EntityID() int64     { return b.ID }
func (b *BusinessUnit) DisplayName() string { return b.Name }

// Position is a seat in a business unit's staffing tree.
type Position struct {
	ID             int64
	Name           string
	Type           string
	BusinessUnitID int64
	ParentID       *int64
}

func (p *Position) EntityKind() Kind    { return KindPosition }
func (p *Position) EntityID() int64     { return p.ID }
func (p *Position) DisplayName() string { return p.Name }

type BusinessPlan struct {
	ID             int64
	Name           string
	BusinessUnitID int64
}

func (p *BusinessPlan) EntityKind() Kind    { return KindBusinessPlan }
func (p *BusinessPlan) EntityID() int64     { return p.ID }
func (p *BusinessPlan) DisplayName() string { return p.Name }

type Objective struct {
	ID             int64
	Name           string
	BusinessPlanID int64
}

func (o *Objective) EntityKind() Kind    { return KindObjective }
func (o *Objective) EntityID() int64     { return o.ID }
func (o *Objective) DisplayName() string { return o.Name }

type KeyResult struct {
	ID          int64
	Name        string
	ObjectiveID int64
}

func (k *KeyResult) EntityKind() Kind    { return KindKeyResult }
func (k *KeyResult) EntityID() int64     { return k.ID }
func (k *KeyResult) DisplayName() string { return k.Name }

type Initiative struct {
	ID          int64
	Name        string
	KeyResultID int64
}

func (i *Initiative) EntityKind() Kind    { return KindInitiative }
func (i *Initiative) EntityID() int64     { return i.ID }
func (i *Initiative) DisplayName() string { return i.Name }
