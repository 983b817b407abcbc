package outbox

var topic = "events_to_forward"
