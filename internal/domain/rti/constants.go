package rti

const (
	MessageClass    = "HMRC-PAYE-RTI-FPS"
	DefaultCurrency = "GBP"

	EnvelopeNamespace = "http://www.govtalk.gov.uk/CM/envelope"
	EnvelopeVersion   = "2.0"

	// NICLetterNone is the data store's placeholder for "no NIC category";
	// the assembler drops the NI block entirely for such employees.
	NICLetterNone = "X"

	// StarterDeclarationDefault applies when a starter has no P45 and no
	// recorded P46 statement.
	StarterDeclarationDefault = "A"

	// PlanPostgraduate is the student loan plan code routed to the
	// postgraduate recovery field; every other plan is a standard loan.
	PlanPostgraduate = "3"

	// HoursBandOther is emitted when no hours-worked band is recorded. The
	// explicit "other" code is the only band that makes no claim about
	// working hours.
	HoursBandOther = "E"
)
