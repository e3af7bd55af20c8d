package event

// Encode serializes an event to its JSON-lines form without the trailing newline.
// Field order follows test2json: Time, Action, Package, Test, Output, Elapsed.
func Encode(ev Event) (string, error) {
	return json.MarshalToString(ev)
}
