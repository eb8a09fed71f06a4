package kernel

type ResumeID string

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (r ResumeID) String() string    { return string(r) }
func (r ResumeID) IsEmpty() bool     { return string(r) == "" }

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }

type JobDescriptionID string

func NewJobDescriptionID(id string) JobDescriptionID { return JobDescriptionID(id) }
func (j JobDescriptionID) String() string            { return string(j) }
func (j JobDescriptionID) IsEmpty() bool             { return string(j) == "" }

// JobID identifies an async processing job, not a job posting.
type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }
