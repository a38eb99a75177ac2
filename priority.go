package ice

// PriorityFunc computes the priority of a local candidate from its type, its
// local preference and the id of the component it belongs to.
type PriorityFunc func(t CandidateType, localPreference uint16, component uint16) uint32

// defaultPriority is the RFC 8445 5.1.2.1 formula. The type preference
// dominates, then the local preference, then the component id as tie-break.
func defaultPriority(t CandidateType, localPreference uint16, component uint16) uint32 {
	return (1<<24)*uint32(t.Preference()) +
		(1<<8)*uint32(localPreference) +
		uint32(256-component)
}
