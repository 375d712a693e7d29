package grpc

// proto.go defines the gRPC server interface derived from
// fairlend/loanapp/v1/loanapp.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/fairlend/loanapp/api/gen/go/fairlend/loanapp/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type ApplicantMessage struct {
	Id        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type LoanApplicationMessage struct {
	Id                string            `json:"id,omitempty"`
	ApplicantId       string            `json:"applicant_id,omitempty"`
	Applicant         *ApplicantMessage `json:"applicant,omitempty"`
	Amount            string            `json:"amount,omitempty"`
	RiskScore         *int32            `json:"risk_score,omitempty"`
	Status            string            `json:"status,omitempty"`
	ExternalReference string            `json:"external_reference,omitempty"`
	CreatedAt         string            `json:"created_at,omitempty"`
	UpdatedAt         string            `json:"updated_at,omitempty"`
}

type SubmitApplicationRequest struct {
	ApplicantName     string `json:"applicant_name,omitempty"`
	ApplicantEmail    string `json:"applicant_email,omitempty"`
	ApplicantPhone    string `json:"applicant_phone,omitempty"`
	Amount            string `json:"amount,omitempty"`
	ExternalReference string `json:"external_reference,omitempty"`
}

type SubmitApplicationResponse struct {
	Application *LoanApplicationMessage `json:"application,omitempty"`
}

type GetApplicationRequest struct {
	ApplicationId string `json:"application_id,omitempty"`
}

type GetApplicationResponse struct {
	Application *LoanApplicationMessage `json:"application,omitempty"`
}

type UpdateApplicationStatusRequest struct {
	ApplicationId string `json:"application_id,omitempty"`
	Status        string `json:"status,omitempty"`
}

type UpdateApplicationStatusResponse struct {
	Application *LoanApplicationMessage `json:"application,omitempty"`
}

type ListApplicationsRequest struct {
	Status    string `json:"status,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type ListApplicationsResponse struct {
	Applications []*LoanApplicationMessage `json:"applications,omitempty"`
	Count        int32                     `json:"count,omitempty"`
}

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	Total         int64   `json:"total,omitempty"`
	Approved      int64   `json:"approved,omitempty"`
	Rejected      int64   `json:"rejected,omitempty"`
	Pending       int64   `json:"pending,omitempty"`
	ManualReview  int64   `json:"manual_review,omitempty"`
	ApprovalRate  float64 `json:"approval_rate,omitempty"`
	AverageAmount float64 `json:"average_amount,omitempty"`
	RecentCount   int64   `json:"recent_count,omitempty"`
	Timestamp     string  `json:"timestamp,omitempty"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// LoanServiceServer is the server API for LoanService.
// It mirrors the proto-generated interface from fairlend.loanapp.v1.LoanService.
type LoanServiceServer interface {
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error)
	GetApplication(context.Context, *GetApplicationRequest) (*GetApplicationResponse, error)
	UpdateApplicationStatus(context.Context, *UpdateApplicationStatusRequest) (*UpdateApplicationStatusResponse, error)
	ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error)
	GetSummary(context.Context, *GetSummaryRequest) (*GetSummaryResponse, error)
	mustEmbedUnimplementedLoanServiceServer()
}

// UnimplementedLoanServiceServer provides forward-compatible default implementations.
type UnimplementedLoanServiceServer struct{}

func (UnimplementedLoanServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitApplication not implemented")
}
func (UnimplementedLoanServiceServer) GetApplication(context.Context, *GetApplicationRequest) (*GetApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetApplication not implemented")
}
func (UnimplementedLoanServiceServer) UpdateApplicationStatus(context.Context, *UpdateApplicationStatusRequest) (*UpdateApplicationStatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateApplicationStatus not implemented")
}
func (UnimplementedLoanServiceServer) ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListApplications not implemented")
}
func (UnimplementedLoanServiceServer) GetSummary(context.Context, *GetSummaryRequest) (*GetSummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSummary not implemented")
}
func (UnimplementedLoanServiceServer) mustEmbedUnimplementedLoanServiceServer() {}

// RegisterLoanServiceServer registers the LoanServiceServer with the gRPC server.
func RegisterLoanServiceServer(s *grpclib.Server, srv LoanServiceServer) {
	s.RegisterService(&_LoanService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _LoanService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "fairlend.loanapp.v1.LoanService",
	HandlerType: (*LoanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "SubmitApplication", Handler: _LoanService_SubmitApplication_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "GetApplication", Handler: _LoanService_GetApplication_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "UpdateApplicationStatus", Handler: _LoanService_UpdateApplicationStatus_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ListApplications", Handler: _LoanService_ListApplications_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "GetSummary", Handler: _LoanService_GetSummary_Handler},                           //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_SubmitApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).SubmitApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fairlend.loanapp.v1.LoanService/SubmitApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).SubmitApplication(ctx, req.(*SubmitApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_GetApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).GetApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fairlend.loanapp.v1.LoanService/GetApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).GetApplication(ctx, req.(*GetApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_UpdateApplicationStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateApplicationStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).UpdateApplicationStatus(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fairlend.loanapp.v1.LoanService/UpdateApplicationStatus",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).UpdateApplicationStatus(ctx, req.(*UpdateApplicationStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_ListApplications_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListApplicationsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).ListApplications(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fairlend.loanapp.v1.LoanService/ListApplications",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).ListApplications(ctx, req.(*ListApplicationsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_GetSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).GetSummary(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fairlend.loanapp.v1.LoanService/GetSummary",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).GetSummary(ctx, req.(*GetSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}
