package resolvers

type BuiltInResolverType = string

const (
	MemoryResolverType BuiltInResolverType = "memory"
	HTTPResolverType   BuiltInResolverType = "http"
)

// RegisterBuiltins registers all built-in resolvers by default
// or only the specific ones if keys are provided
func RegisterBuiltins(resolvers ...BuiltInResolverType) {
	if len(resolvers) == 0 {
		resolvers = append(resolvers, MemoryResolverType, HTTPResolverType)
	}

	for _, key := range resolvers {
		switch key {
		case MemoryResolverType:
			RegisterMemory()
		case HTTPResolverType:
			RegisterHTTP()
		}
	}
}
