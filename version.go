package calculator

// Version of the library and the calc tool.
const Version = "0.3.0"
