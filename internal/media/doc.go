// Package media derives presentation data for catalog records: cover
// images looked up by game title, YouTube trailer ids, storage labels and
// WhatsApp purchase links.
package media
