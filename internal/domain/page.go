package domain

import "errors"

// ErrInvalidPage возвращается при некорректных параметрах пагинации
var ErrInvalidPage = errors.New("invalid page request")

// PageRequest окно выборки, заданное смещением первого элемента и размером страницы
type PageRequest struct {
	From int
	Size int
}

// NewPageRequest проверяет from >= 0 и size >= 1
func NewPageRequest(from, size int) (PageRequest, error) {
	if from < 0 || size < 1 {
		return PageRequest{}, ErrInvalidPage
	}
	return PageRequest{From: from, Size: size}, nil
}

// PageNumber номер страницы: from/size, целочисленное деление.
// Если from не кратен size, первая запись страницы не совпадает с from.
func (p PageRequest) PageNumber() int {
	if p.From == 0 {
		return 0
	}
	return p.From / p.Size
}

// Offset смещение первой записи страницы
func (p PageRequest) Offset() int {
	return p.PageNumber() * p.Size
}

// Limit размер страницы
func (p PageRequest) Limit() int {
	return p.Size
}
