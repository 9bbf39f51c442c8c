package model

// Ownership records who may mutate a board or comment. Exactly one of
// MemberID and PasswordHash is set.
type Ownership struct {
	MemberID     *uint   `gorm:"index" json:"member_id"`
	PasswordHash *string `gorm:"size:255" json:"-"`
}

func MemberOwned(memberID uint) Ownership {
	return Ownership{MemberID: &memberID}
}

func PasswordOwned(hash string) Ownership {
	return Ownership{PasswordHash: &hash}
}

func (o Ownership) IsAnonymous() bool {
	return o.PasswordHash != nil
}

// Valid reports whether exactly one owner kind is present.
func (o Ownership) Valid() bool {
	return (o.MemberID == nil) != (o.PasswordHash == nil)
}

func (o Ownership) OwnedBy(memberID uint) bool {
	return o.MemberID != nil && *o.MemberID == memberID
}
