// Package formstash persists HTML form field values in browser local storage
// and restores them on a later page load.
//
// Each form is stored as a JSON object mapping field names to the ordered list
// of values the form would submit, under the key "form#<id>". The restoring
// side is written against small [Form], [Control] and [Storage] interfaces; on
// js/wasm builds [HTMLForm] and [LocalStorage] bind them to the DOM.
package formstash
