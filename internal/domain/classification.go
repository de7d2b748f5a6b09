package domain

// Classification is the load-carrier category of a pick.
type Classification string

const (
	ClassPallet           Classification = "Pallet"
	ClassSmallLoadCarrier Classification = "SmallLoadCarrier"
	ClassOther            Classification = "Other"
)

// Default inclusive bounds of the small-load-carrier (KLT) unloading-point range.
const (
	DefaultKLTStart = "00490000000000000000"
	DefaultKLTEnd   = "00499999999999999999"
)

// Classifier assigns a Classification from certificate presence and the
// unloading-point range. Bounds must be canonical-width digit strings.
type Classifier struct {
	KLTStart string
	KLTEnd   string
}

// Classify applies the rules in order: a certificate means Pallet even when the
// unloading point is in the KLT range; an in-range unloading point means
// SmallLoadCarrier; everything else is Other.
//
// The range test compares equal-width strings lexicographically so that
// leading zeros keep their meaning.
func (c Classifier) Classify(e PickEvent) Classification {
	if e.HasCertificate() {
		return ClassPallet
	}

	up := NormalizeIdentifier(e.UnloadingPoint)
	if len(up) == CanonicalIdentifierWidth && up >= c.KLTStart && up <= c.KLTEnd {
		return ClassSmallLoadCarrier
	}

	return ClassOther
}
