package common

// UnknownStr is the placeholder name used when stringifying an
// out-of-range enum value.
const UnknownStr = "unknown"
